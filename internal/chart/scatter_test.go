package chart

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"cardash/internal/listing"
	"cardash/internal/models"
)

func TestPriceAgeScatterSymmetricColorRange(t *testing.T) {
	// pct_diff = (pred - price) / pred * 100 -> -5 and 10.
	sub := fullSubset(
		listingRow("Polo", 10, 90, 10500, 10000, "Benzine"),
		listingRow("Polo", 20, 120, 9000, 10000, "Diesel"),
	)
	fig, err := PriceAgeScatter(sub, "Volkswagen", "Polo")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(fig.Data) != 2 {
		t.Fatalf("traces=%d want=2", len(fig.Data))
	}
	m := fig.Data[0].Marker
	if m.CMin != -10 || m.CMax != 10 {
		t.Fatalf("color range=[%v,%v] want=[-10,10]", m.CMin, m.CMax)
	}
	if got := ColorAt(m.ColorScale, 0, m.CMin, m.CMax); got != Neutral {
		t.Fatalf("midpoint color=%v want=%v", got, Neutral)
	}
	if want := []float64{-10, 0, 10}; !reflect.DeepEqual(m.ColorBar.TickVals, want) {
		t.Fatalf("tickvals=%v want=%v", m.ColorBar.TickVals, want)
	}
	if want := []string{"-10%", "0%", "10%"}; !reflect.DeepEqual(m.ColorBar.TickText, want) {
		t.Fatalf("ticktext=%v want=%v", m.ColorBar.TickText, want)
	}
	if !m.ShowScale || fig.Data[1].Marker.ShowScale {
		t.Fatalf("colorbar should be shown once")
	}
}

func TestPriceAgeScatterEmptyModel(t *testing.T) {
	sub := fullSubset(listingRow("Golf", 10, 90, 10000, 10000, "Benzine"))
	fig, err := PriceAgeScatter(sub, "Volkswagen", "Polo")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if fig.Layout.Title.Text != NoListingsTitle {
		t.Fatalf("title=%q want=%q", fig.Layout.Title.Text, NoListingsTitle)
	}
	if len(fig.Data) != 0 {
		t.Fatalf("placeholder has %d traces", len(fig.Data))
	}
	b, err := json.Marshal(fig)
	if err != nil {
		t.Fatalf("marshal err=%v", err)
	}
	if !strings.Contains(string(b), `"data":[]`) {
		t.Fatalf("placeholder json=%s", b)
	}
}

func TestPriceAgeScatterMissingColumns(t *testing.T) {
	sub := listing.NewSubset(nil, []string{models.ColBrand, models.ColModel, models.ColPrice})
	_, err := PriceAgeScatter(sub, "Volkswagen", "Polo")
	var mce *MissingColumnsError
	if !errors.As(err, &mce) {
		t.Fatalf("err=%v want MissingColumnsError", err)
	}
	want := []string{models.ColURL, models.ColFuel, models.ColPowerHP, models.ColPredictedPrice, models.ColVehicleAge}
	if len(mce.Missing) != len(want) {
		t.Fatalf("missing=%v want %d columns", mce.Missing, len(want))
	}
	if !strings.Contains(err.Error(), models.ColURL) {
		t.Fatalf("error %q should name missing columns", err)
	}
}

func TestPriceAgeScatterFuelSymbolsAndCustomData(t *testing.T) {
	sub := fullSubset(
		listingRow("Polo", 10, 90, 10000, 10000, "Diesel"),
		listingRow("Polo", 20, 120, 9000, 10000, "Benzine"),
		listingRow("Polo", 30, 60, 8000, 8000, "Diesel"),
		listingRow("Golf", 30, 60, 8000, 8000, "Electric"),
	)
	fig, err := PriceAgeScatter(sub, "Volkswagen", "Polo")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	// Traces are sorted by fuel; symbols follow first appearance.
	if fig.Data[0].Name != "Benzine" || fig.Data[1].Name != "Diesel" {
		t.Fatalf("trace order=%q,%q", fig.Data[0].Name, fig.Data[1].Name)
	}
	if fig.Data[0].Marker.Symbol != 1 || fig.Data[1].Marker.Symbol != 0 {
		t.Fatalf("symbols=%d,%d want=1,0", fig.Data[0].Marker.Symbol, fig.Data[1].Marker.Symbol)
	}
	diesel := fig.Data[1]
	if len(diesel.X) != 2 {
		t.Fatalf("diesel points=%d want=2", len(diesel.X))
	}
	if url, _ := diesel.CustomData[0][CustomURL].(string); url != "lst/Polo" {
		t.Fatalf("customdata[0]=%v want listing url", diesel.CustomData[0][CustomURL])
	}
	if want := SizeRef(90); diesel.Marker.SizeRef != want {
		t.Fatalf("sizeref=%v want=%v", diesel.Marker.SizeRef, want)
	}
	if fig.Layout.Title.Text != "Vehicles for sale: Volkswagen Polo" {
		t.Fatalf("title=%q", fig.Layout.Title.Text)
	}
}

func TestWithPctDiffKeepsProvidedValues(t *testing.T) {
	given := 3.0
	r1 := listingRow("Polo", 10, 90, 9000, 10000, "Benzine")
	r1.PctDiff = &given
	r2 := listingRow("Polo", 10, 90, 9000, 10000, "Benzine")
	sub := listing.NewSubset([]models.Listing{r1, r2}, append(fullSubset().Columns(), models.ColPctDiff))

	out := WithPctDiff(sub)
	if *out.Rows[0].PctDiff != 3 {
		t.Fatalf("provided pct_diff overwritten: %v", *out.Rows[0].PctDiff)
	}
	if math.Abs(*out.Rows[1].PctDiff-10) > 1e-9 {
		t.Fatalf("missing pct_diff=%v want=10", *out.Rows[1].PctDiff)
	}
	if sub.Rows[1].PctDiff != nil {
		t.Fatalf("input rows were modified")
	}
}

func TestWithPctDiffRecomputesWhenColumnAbsent(t *testing.T) {
	stale := 99.0
	r := listingRow("Polo", 10, 90, 9000, 10000, "Benzine")
	r.PctDiff = &stale
	out := WithPctDiff(fullSubset(r))
	if math.Abs(*out.Rows[0].PctDiff-10) > 1e-9 {
		t.Fatalf("pct_diff=%v want=10", *out.Rows[0].PctDiff)
	}
	if !out.Has(models.ColPctDiff) {
		t.Fatalf("pct_diff column not added")
	}
}

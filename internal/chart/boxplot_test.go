package chart

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"cardash/internal/listing"
	"cardash/internal/models"
)

func TestComparativeBoxplotOrdersByMeanAndSkipsSingletons(t *testing.T) {
	var rows []models.Listing
	rows = append(rows, priced("Golf", 20000, 22000, 24000)...)
	rows = append(rows, priced("Polo", 10000, 12000)...)
	rows = append(rows, priced("Up", 5000)...)
	rows = append(rows, priced("Passat", 30000, 34000)...)

	fig, err := ComparativeBoxplot(fullSubset(rows...), "Golf")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if want := []string{"Up", "Polo", "Golf", "Passat"}; !reflect.DeepEqual(fig.Layout.XAxis.TickText, want) {
		t.Fatalf("ticks=%v want=%v", fig.Layout.XAxis.TickText, want)
	}
	var drawn []string
	for _, tr := range fig.Data {
		if tr.Meta["role"] == RoleBox {
			drawn = append(drawn, tr.Meta["model"].(string))
		}
	}
	if want := []string{"Polo", "Golf", "Passat"}; !reflect.DeepEqual(drawn, want) {
		t.Fatalf("boxes=%v want=%v", drawn, want)
	}
	if len(fig.Data) != 6 {
		t.Fatalf("traces=%d want=6 (box + mean per model)", len(fig.Data))
	}
	if fig.Layout.XAxis.TickAngle != -45 {
		t.Fatalf("tickangle=%d", fig.Layout.XAxis.TickAngle)
	}
}

func TestComparativeBoxplotYRangePadding(t *testing.T) {
	var rows []models.Listing
	rows = append(rows, priced("A", 100, 200)...)
	rows = append(rows, priced("B", 300, 500)...)
	fig, err := ComparativeBoxplot(fullSubset(rows...), "A")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	// q1(A)=125, q3(B)=450 -> span 325, pad 16.25.
	want := []float64{108.75, 466.25}
	got := fig.Layout.YAxis.Range
	if len(got) != 2 || math.Abs(got[0]-want[0]) > 1e-9 || math.Abs(got[1]-want[1]) > 1e-9 {
		t.Fatalf("range=%v want=%v", got, want)
	}
}

func TestComparativeBoxplotEmpty(t *testing.T) {
	fig, err := ComparativeBoxplot(fullSubset(), "Golf")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if want := []float64{0, 1}; !reflect.DeepEqual(fig.Layout.YAxis.Range, want) {
		t.Fatalf("range=%v want=%v", fig.Layout.YAxis.Range, want)
	}
}

func TestComparativeBoxplotMissingColumns(t *testing.T) {
	_, err := ComparativeBoxplot(listing.NewSubset(nil, []string{models.ColModel}), "Golf")
	var mce *MissingColumnsError
	if !errors.As(err, &mce) {
		t.Fatalf("err=%v want MissingColumnsError", err)
	}
	if want := []string{models.ColBrand, models.ColPrice}; !reflect.DeepEqual(mce.Missing, want) {
		t.Fatalf("missing=%v want=%v", mce.Missing, want)
	}
}

func TestClassify(t *testing.T) {
	anchor := Anchor{Q1: 100, Q3: 200, Valid: true}
	tests := []struct {
		name     string
		q1, q3   float64
		selected bool
		want     Highlight
	}{
		{"selected", 100, 200, true, HighlightSelected},
		{"below", 50, 90, false, HighlightBelow},
		{"inside", 150, 180, false, HighlightOverlap},
		{"straddles low edge", 80, 120, false, HighlightOverlap},
		{"above", 210, 260, false, HighlightAbove},
		{"touches upper edge", 200, 250, false, HighlightAbove},
	}
	for _, tt := range tests {
		if got := Classify(tt.q1, tt.q3, anchor, tt.selected); got != tt.want {
			t.Fatalf("%s: got=%s want=%s", tt.name, got, tt.want)
		}
	}
	if Classify(50, 90, anchor, false) == Classify(150, 180, anchor, false) {
		t.Fatalf("below and overlap should differ")
	}
	if got := Classify(50, 90, Anchor{}, false); got != HighlightNeutral {
		t.Fatalf("no anchor: got=%s want=neutral", got)
	}
	if got := Classify(100, 100, Anchor{Q1: 100, Q3: 100, Valid: true}, false); got != HighlightNeutral {
		t.Fatalf("degenerate: got=%s want=neutral", got)
	}
}

func TestSummarizeModelsBoxDetails(t *testing.T) {
	rows := priced("Golf", 10000, 20000, 30000, 40000)
	rows[3].Brand = "Seat"
	rows = append(rows, priced("Polo", 1000, 3000)...)
	_, boxes := SummarizeModels(fullSubset(rows...), "Polo")
	if len(boxes) != 2 {
		t.Fatalf("boxes=%d want=2", len(boxes))
	}
	golf := boxes[1]
	if golf.Q1 != 17500 || golf.Q3 != 32500 || golf.Mean != 25000 {
		t.Fatalf("golf box=%+v", golf)
	}
	if golf.Brand != "Volkswagen" {
		t.Fatalf("brand=%q want most frequent", golf.Brand)
	}
	if golf.Highlight != HighlightAbove || boxes[0].Highlight != HighlightSelected {
		t.Fatalf("highlights=%s,%s", boxes[0].Highlight, golf.Highlight)
	}
}

func TestQuantileLinear(t *testing.T) {
	vals := []float64{4, 1, 3, 2}
	if got := quantile(vals, 0.25); got != 1.75 {
		t.Fatalf("q1=%v want=1.75", got)
	}
	if got := quantile(vals, 0.75); got != 3.25 {
		t.Fatalf("q3=%v want=3.25", got)
	}
	if got := quantile([]float64{7}, 0.75); got != 7 {
		t.Fatalf("single=%v want=7", got)
	}
}

package chart

import (
	"fmt"
	"math"
	"sort"

	"cardash/internal/listing"
	"cardash/internal/models"
)

const NoListingsTitle = "No listings found for selected model"

// ScatterColumns must be carried by the scatter input.
var ScatterColumns = []string{
	models.ColModel, models.ColBrand, models.ColVehicleAge, models.ColPrice,
	models.ColPowerHP, models.ColPredictedPrice, models.ColURL, models.ColFuel,
}

// Indexes into a scatter point's customdata. CustomURL is what the click
// handler reads.
const (
	CustomURL = iota
	CustomFuel
	CustomPrice
	CustomPredicted
	CustomPctDiff
)

const scatterHover = "Age: %{x} months<br>" +
	"Price: €%{customdata[2]:,.0f}<br>" +
	"Predicted: €%{customdata[3]:,.0f}<br>" +
	"Deviation: %{customdata[4]:.1f}%<br>" +
	"Fuel: %{customdata[1]}<br>" +
	"Power: %{marker.size} HP<br>" +
	"<extra></extra>"

// PriceAgeScatter plots price against age for the listings of model, colored
// by deviation from the predicted price and sized by horsepower, one trace per
// fuel type.
func PriceAgeScatter(sub listing.Subset, brand, model string) (*Figure, error) {
	if err := requireColumns("price-age scatter", sub, ScatterColumns...); err != nil {
		return nil, err
	}
	sub = WithPctDiff(sub)
	rows := sub.Where(func(l *models.Listing) bool { return l.Model == model }).Rows
	if len(rows) == 0 {
		return Placeholder(NoListingsTitle), nil
	}

	vmin, vmax := SymmetricRange(rows)

	symbols := map[string]int{}
	groups := map[string][]models.Listing{}
	for _, r := range rows {
		if _, ok := symbols[r.Fuel]; !ok {
			symbols[r.Fuel] = len(symbols)
		}
		groups[r.Fuel] = append(groups[r.Fuel], r)
	}
	fuels := make([]string, 0, len(groups))
	for f := range groups {
		fuels = append(fuels, f)
	}
	sort.Strings(fuels)

	fig := &Figure{Layout: scatterLayout(brand, model)}
	for i, fuel := range fuels {
		fig.Data = append(fig.Data, fuelTrace(fuel, groups[fuel], symbols[fuel], vmin, vmax, i == 0))
	}
	return fig, nil
}

// WithPctDiff fills pct_diff when the column is absent or entirely empty.
// Individual empty values in an otherwise populated column are filled too.
// The input rows are not modified.
func WithPctDiff(sub listing.Subset) listing.Subset {
	rows := append([]models.Listing(nil), sub.Rows...)
	recompute := !sub.Has(models.ColPctDiff) || allPctMissing(rows)
	for i := range rows {
		if recompute || rows[i].PctDiff == nil {
			v := rows[i].ComputePctDiff()
			rows[i].PctDiff = &v
		}
	}
	out := listing.NewSubset(rows, sub.Columns())
	return out.WithColumn(models.ColPctDiff)
}

func allPctMissing(rows []models.Listing) bool {
	for _, r := range rows {
		if r.PctDiff != nil {
			return false
		}
	}
	return true
}

// SymmetricRange returns [-m, m] where m is the largest absolute pct_diff, so
// zero deviation sits at the middle of the color scale.
func SymmetricRange(rows []models.Listing) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range rows {
		v := pct(r)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	m := math.Max(math.Abs(lo), math.Abs(hi))
	return -m, m
}

func pct(r models.Listing) float64 {
	if r.PctDiff != nil {
		return *r.PctDiff
	}
	return r.ComputePctDiff()
}

func fuelTrace(fuel string, rows []models.Listing, symbol int, vmin, vmax float64, withScale bool) Trace {
	t := Trace{
		Type:          "scatter",
		Mode:          "markers",
		Name:          fuel,
		X:             make([]float64, len(rows)),
		Y:             make([]float64, len(rows)),
		CustomData:    make([][]any, len(rows)),
		HoverTemplate: scatterHover,
		Meta:          map[string]any{"role": RolePoints, "fuel": fuel},
	}
	marker := &Marker{
		Size:       make([]float64, len(rows)),
		SizeMode:   "area",
		SizeMin:    2,
		Color:      make([]float64, len(rows)),
		ColorScale: RdBu,
		CMin:       vmin,
		CMax:       vmax,
		ShowScale:  withScale,
		ColorBar:   deviationColorBar(vmin, vmax),
		Line:       &Line{Color: "black", Width: 1},
		Symbol:     symbol,
	}
	maxPower := 0.0
	for i, r := range rows {
		p := pct(r)
		t.X[i] = float64(r.VehicleAge)
		t.Y[i] = r.PriceFloat()
		t.CustomData[i] = []any{r.URL, r.Fuel, r.PriceFloat(), r.PredictedFloat(), p}
		marker.Size[i] = float64(r.PowerHP)
		marker.Color[i] = p
		maxPower = math.Max(maxPower, float64(r.PowerHP))
	}
	marker.SizeRef = SizeRef(maxPower)
	t.Marker = marker
	return t
}

// SizeRef scales area-mode markers so the largest power renders about 12px
// across.
func SizeRef(maxPower float64) float64 {
	if maxPower <= 0 {
		return 1
	}
	return 2 * maxPower / (12 * 12)
}

func deviationColorBar(vmin, vmax float64) *ColorBar {
	return &ColorBar{
		Title:     Title{Text: "Deviation from predicted price", Side: "right", Font: &Font{Size: 14}},
		TickVals:  []float64{vmin, 0, vmax},
		TickText:  []string{fmt.Sprintf("%d%%", int(vmin)), "0%", fmt.Sprintf("%d%%", int(vmax))},
		LenMode:   "pixels",
		Len:       450,
		Thickness: 18,
	}
}

func scatterLayout(brand, model string) Layout {
	l := whiteLayout(fmt.Sprintf("Vehicles for sale: %s %s", brand, model))
	l.Title.X = floatPtr(0)
	l.Title.XAnchor = "left"
	l.Title.Font = &Font{Size: 16}
	l.Margin = &Margin{T: 60, L: 50, R: 20, B: 80}
	l.XAxis = framedAxis("Vehicle Age (months)")
	l.YAxis = framedAxis("Price (€)")
	l.Legend = &Legend{
		Title:       &Title{Text: "<b>Fuel type</b>", Side: "top", Font: &Font{Size: 12}},
		X:           1,
		Y:           1,
		XAnchor:     "right",
		YAnchor:     "top",
		BGColor:     "rgba(255,255,255,0.7)",
		BorderColor: "gray",
		BorderWidth: 1,
		Font:        &Font{Size: 12},
	}
	return l
}

// Placeholder is an empty figure whose title explains why nothing is shown.
func Placeholder(title string) *Figure {
	return &Figure{Data: []Trace{}, Layout: whiteLayout(title)}
}

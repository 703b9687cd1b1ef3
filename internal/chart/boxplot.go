package chart

import (
	"fmt"
	"math"
	"sort"

	"cardash/internal/listing"
	"cardash/internal/models"
)

const BoxplotTitle = "Comparison with similar car models for sale"

var BoxplotColumns = []string{models.ColModel, models.ColPrice, models.ColBrand}

// Highlight classifies a model's interquartile range against the selected
// model's range.
type Highlight string

const (
	HighlightSelected Highlight = "selected"
	HighlightOverlap  Highlight = "overlap"
	HighlightBelow    Highlight = "below"
	HighlightAbove    Highlight = "above"
	HighlightNeutral  Highlight = "neutral"
)

var highlightLines = map[Highlight]Line{
	HighlightSelected: {Color: "black", Width: 3},
	HighlightOverlap:  {Color: "orange", Width: 1},
	HighlightBelow:    {Color: "green", Width: 1},
	HighlightAbove:    {Color: "red", Width: 1},
	HighlightNeutral:  {Color: "lightgray", Width: 1},
}

// HighlightLine returns the outline used for h.
func HighlightLine(h Highlight) Line {
	if l, ok := highlightLines[h]; ok {
		return l
	}
	return highlightLines[HighlightNeutral]
}

// Anchor is the selected model's price quartiles. Valid is false when the
// selected model has no prices in the comparison set.
type Anchor struct {
	Q1, Q3 float64
	Valid  bool
}

// Classify compares the box [q1, q3] with the anchor.
func Classify(q1, q3 float64, anchor Anchor, selected bool) Highlight {
	switch {
	case selected:
		return HighlightSelected
	case !anchor.Valid:
		return HighlightNeutral
	case q1 < anchor.Q3 && q3 > anchor.Q1:
		return HighlightOverlap
	case q3 <= anchor.Q1 && q1 < anchor.Q1:
		return HighlightBelow
	case q1 >= anchor.Q3 && q3 > anchor.Q3:
		return HighlightAbove
	default:
		return HighlightNeutral
	}
}

// ModelBox is the summary drawn for one model.
type ModelBox struct {
	Model     string
	Brand     string
	Position  int
	Q1, Q3    float64
	Mean      float64
	Highlight Highlight
}

type modelGroup struct {
	prices []float64
	brands []string
}

// ComparativeBoxplot draws a whiskerless Q1-Q3 box with a mean line for every
// model in sub, ordered by mean price and colored against selectedModel.
func ComparativeBoxplot(sub listing.Subset, selectedModel string) (*Figure, error) {
	if err := requireColumns("comparative boxplot", sub, BoxplotColumns...); err != nil {
		return nil, err
	}
	ordered, boxes := SummarizeModels(sub, selectedModel)

	fig := &Figure{Data: []Trace{}, Layout: boxplotLayout(ordered)}
	var q1s, q3s []float64
	for _, b := range boxes {
		q1s = append(q1s, b.Q1)
		q3s = append(q3s, b.Q3)
		fig.Data = append(fig.Data, boxTrace(b), meanTrace(b))
	}
	fig.Layout.YAxis.Range = yRange(q1s, q3s)
	return fig, nil
}

// SummarizeModels returns every model ordered by ascending mean price and the
// boxes for the models with at least two prices.
func SummarizeModels(sub listing.Subset, selectedModel string) ([]string, []ModelBox) {
	groups := map[string]*modelGroup{}
	var names []string
	for _, r := range sub.Rows {
		g, ok := groups[r.Model]
		if !ok {
			g = &modelGroup{}
			groups[r.Model] = g
			names = append(names, r.Model)
		}
		g.prices = append(g.prices, r.PriceFloat())
		g.brands = append(g.brands, r.Brand)
	}
	means := make(map[string]float64, len(groups))
	for name, g := range groups {
		means[name] = mean(g.prices)
	}
	sort.SliceStable(names, func(i, j int) bool {
		if means[names[i]] != means[names[j]] {
			return means[names[i]] < means[names[j]]
		}
		return names[i] < names[j]
	})

	var anchor Anchor
	if g, ok := groups[selectedModel]; ok && len(g.prices) > 0 {
		anchor = Anchor{Q1: quantile(g.prices, 0.25), Q3: quantile(g.prices, 0.75), Valid: true}
	}

	var boxes []ModelBox
	for i, name := range names {
		g := groups[name]
		if len(g.prices) < 2 {
			continue
		}
		b := ModelBox{
			Model:    name,
			Brand:    mode(g.brands),
			Position: i,
			Q1:       quantile(g.prices, 0.25),
			Q3:       quantile(g.prices, 0.75),
			Mean:     means[name],
		}
		b.Highlight = Classify(b.Q1, b.Q3, anchor, name == selectedModel)
		boxes = append(boxes, b)
	}
	return names, boxes
}

func thousands(v float64) string {
	return fmt.Sprintf("%.1fk", v/1000)
}

func boxTrace(b ModelBox) Trace {
	x := float64(b.Position)
	line := HighlightLine(b.Highlight)
	return Trace{
		Type:      "scatter",
		Mode:      "lines",
		X:         []float64{x - 0.2, x + 0.2, x + 0.2, x - 0.2, x - 0.2},
		Y:         []float64{b.Q1, b.Q1, b.Q3, b.Q3, b.Q1},
		Fill:      "toself",
		FillColor: "rgba(0,0,0,0)",
		Line:      &line,
		Text: fmt.Sprintf("<b>Brand:</b> %s<br><b>Model:</b> %s<br><b>Approx. Price Range:</b> %s – %s EUR<br><b>Avg. Price:</b> %s EUR",
			b.Brand, b.Model, thousands(b.Q1), thousands(b.Q3), thousands(b.Mean)),
		HoverInfo:  "text",
		ShowLegend: boolPtr(false),
		Meta: map[string]any{
			"role":      RoleBox,
			"model":     b.Model,
			"highlight": string(b.Highlight),
		},
	}
}

func meanTrace(b ModelBox) Trace {
	x := float64(b.Position)
	line := HighlightLine(b.Highlight)
	return Trace{
		Type:       "scatter",
		Mode:       "lines",
		X:          []float64{x - 0.2, x + 0.2},
		Y:          []float64{b.Mean, b.Mean},
		Line:       &line,
		HoverInfo:  "skip",
		ShowLegend: boolPtr(false),
		Meta:       map[string]any{"role": RoleMeanLine, "model": b.Model},
	}
}

// yRange pads the span of all boxes by 5% on each side.
func yRange(q1s, q3s []float64) []float64 {
	if len(q1s) == 0 || len(q3s) == 0 {
		return []float64{0, 1}
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range q1s {
		lo = math.Min(lo, v)
	}
	for _, v := range q3s {
		hi = math.Max(hi, v)
	}
	pad := (hi - lo) * 0.05
	return []float64{lo - pad, hi + pad}
}

func boxplotLayout(ordered []string) Layout {
	l := whiteLayout(BoxplotTitle)
	l.Margin = &Margin{L: 50, R: 20, T: 60, B: 100}
	ticks := make([]float64, len(ordered))
	for i := range ordered {
		ticks[i] = float64(i)
	}
	l.XAxis = Axis{
		ShowLine:  true,
		LineColor: "gray",
		LineWidth: 1,
		Mirror:    true,
		ZeroLine:  boolPtr(false),
		TickMode:  "array",
		TickVals:  ticks,
		TickText:  append([]string(nil), ordered...),
		TickAngle: -45,
		TickFont:  &Font{Color: "black", Size: 11},
	}
	l.YAxis = framedAxis("Price (€)")
	return l
}

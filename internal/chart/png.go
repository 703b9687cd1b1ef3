package chart

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var namedColors = map[string]drawing.Color{
	"black":     drawing.ColorBlack,
	"orange":    {R: 255, G: 165, B: 0, A: 255},
	"green":     {R: 0, G: 128, B: 0, A: 255},
	"red":       {R: 255, G: 0, B: 0, A: 255},
	"lightgray": {R: 211, G: 211, B: 211, A: 255},
	"gray":      {R: 128, G: 128, B: 128, A: 255},
}

func lineColor(name string) drawing.Color {
	if c, ok := namedColors[name]; ok {
		return c
	}
	return drawing.ColorBlack
}

func toDrawing(c RGB) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: 255}
}

// RenderPNG draws fig with go-chart. Placeholder figures render as a blank
// white image.
func RenderPNG(fig *Figure, width, height int, w io.Writer) error {
	if fig == nil {
		return errors.New("render png: nil figure")
	}
	if len(fig.Data) == 0 {
		return blank(width, height, w)
	}
	ch := gochart.Chart{
		Title:      fig.Layout.Title.Text,
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 48}},
	}
	var xs, ys []float64
	for _, tr := range fig.Data {
		s, ok := seriesFor(tr)
		if !ok {
			continue
		}
		ch.Series = append(ch.Series, s)
		xs = append(xs, tr.X...)
		ys = append(ys, tr.Y...)
	}
	if len(ch.Series) == 0 {
		return blank(width, height, w)
	}
	ch.XAxis = gochart.XAxis{Name: axisTitle(fig.Layout.XAxis), Range: paddedRange(xs, 0.05)}
	ch.YAxis = gochart.YAxis{Name: axisTitle(fig.Layout.YAxis), Range: paddedRange(ys, 0.05)}
	if r := fig.Layout.YAxis.Range; len(r) == 2 && r[1] > r[0] {
		ch.YAxis.Range = &gochart.ContinuousRange{Min: r[0], Max: r[1]}
	}
	if ax := fig.Layout.XAxis; len(ax.TickVals) > 0 && len(ax.TickVals) == len(ax.TickText) {
		ch.XAxis.Ticks = make([]gochart.Tick, len(ax.TickVals))
		for i, v := range ax.TickVals {
			ch.XAxis.Ticks[i] = gochart.Tick{Value: v, Label: ax.TickText[i]}
		}
		ch.XAxis.Range = &gochart.ContinuousRange{Min: -0.5, Max: float64(len(ax.TickVals)) - 0.5}
		ch.XAxis.TickStyle = gochart.Style{TextRotationDegrees: float64(-ax.TickAngle)}
		ch.Background.Padding.Bottom = 110
	}
	if fig.Layout.Legend != nil {
		ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	}
	return ch.Render(gochart.PNG, w)
}

func seriesFor(tr Trace) (gochart.Series, bool) {
	if len(tr.X) == 0 || len(tr.X) != len(tr.Y) {
		return nil, false
	}
	switch tr.Meta["role"] {
	case RolePoints:
		return pointSeries(tr), true
	case RoleBox, RoleMeanLine:
		col := drawing.ColorBlack
		width := 1.0
		if tr.Line != nil {
			col = lineColor(tr.Line.Color)
			width = tr.Line.Width
		}
		return gochart.ContinuousSeries{
			XValues: tr.X,
			YValues: tr.Y,
			Style:   gochart.Style{StrokeColor: col, StrokeWidth: width},
		}, true
	default:
		return nil, false
	}
}

// pointSeries uses dot providers so each point keeps its own deviation color
// and horsepower-proportional area.
func pointSeries(tr Trace) gochart.Series {
	m := tr.Marker
	if m == nil {
		return gochart.ContinuousSeries{Name: tr.Name, XValues: tr.X, YValues: tr.Y, Style: gochart.Style{StrokeWidth: gochart.Disabled, DotWidth: 4}}
	}
	return gochart.ContinuousSeries{
		Name:    tr.Name,
		XValues: tr.X,
		YValues: tr.Y,
		Style: gochart.Style{
			StrokeWidth: gochart.Disabled,
			DotColorProvider: func(_, _ gochart.Range, index int, _, _ float64) drawing.Color {
				if index >= len(m.Color) {
					return toDrawing(Neutral)
				}
				return toDrawing(ColorAt(m.ColorScale, m.Color[index], m.CMin, m.CMax))
			},
			DotWidthProvider: func(_, _ gochart.Range, index int, _, _ float64) float64 {
				if index >= len(m.Size) {
					return m.SizeMin
				}
				return MarkerDiameter(m.Size[index], m.SizeRef, m.SizeMin) / 2
			},
		},
	}
}

// MarkerDiameter follows plotly's area sizing, where sizeref = 2*max/d^2 draws
// the largest value d pixels across. Never below sizemin.
func MarkerDiameter(size, sizeRef, sizeMin float64) float64 {
	if sizeRef <= 0 || size <= 0 {
		return sizeMin
	}
	return math.Max(sizeMin, math.Sqrt(2*size/sizeRef))
}

func axisTitle(a Axis) string {
	if a.Title == nil {
		return ""
	}
	return a.Title.Text
}

func paddedRange(values []float64, frac float64) *gochart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 0) {
		return &gochart.ContinuousRange{Min: 0, Max: 1}
	}
	pad := (hi - lo) * frac
	if pad == 0 {
		pad = math.Max(1, math.Abs(lo)*frac)
	}
	return &gochart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func blank(width, height int, w io.Writer) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return png.Encode(w, img)
}

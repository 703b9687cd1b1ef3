// Package chart builds the dashboard figures. A Figure marshals to the JSON
// shape plotly.js accepts in Plotly.react(el, fig.data, fig.layout).
package chart

type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace roles stored in Trace.Meta["role"].
const (
	RolePoints   = "points"
	RoleBox      = "box"
	RoleMeanLine = "mean"
)

type Trace struct {
	Type          string         `json:"type"`
	Mode          string         `json:"mode,omitempty"`
	Name          string         `json:"name,omitempty"`
	X             []float64      `json:"x"`
	Y             []float64      `json:"y"`
	CustomData    [][]any        `json:"customdata,omitempty"`
	Marker        *Marker        `json:"marker,omitempty"`
	Line          *Line          `json:"line,omitempty"`
	Fill          string         `json:"fill,omitempty"`
	FillColor     string         `json:"fillcolor,omitempty"`
	Text          string         `json:"text,omitempty"`
	HoverInfo     string         `json:"hoverinfo,omitempty"`
	HoverTemplate string         `json:"hovertemplate,omitempty"`
	ShowLegend    *bool          `json:"showlegend,omitempty"`
	Meta          map[string]any `json:"meta,omitempty"`
}

type Marker struct {
	Size       []float64  `json:"size"`
	SizeMode   string     `json:"sizemode"`
	SizeRef    float64    `json:"sizeref"`
	SizeMin    float64    `json:"sizemin"`
	Color      []float64  `json:"color"`
	ColorScale ColorScale `json:"colorscale"`
	CMin       float64    `json:"cmin"`
	CMax       float64    `json:"cmax"`
	ShowScale  bool       `json:"showscale"`
	ColorBar   *ColorBar  `json:"colorbar,omitempty"`
	Line       *Line      `json:"line,omitempty"`
	Symbol     int        `json:"symbol"`
}

type Line struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

type ColorBar struct {
	Title     Title     `json:"title"`
	TickVals  []float64 `json:"tickvals"`
	TickText  []string  `json:"ticktext"`
	LenMode   string    `json:"lenmode,omitempty"`
	Len       float64   `json:"len,omitempty"`
	Thickness float64   `json:"thickness,omitempty"`
}

type Font struct {
	Size  int    `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

type Title struct {
	Text    string   `json:"text"`
	Side    string   `json:"side,omitempty"`
	X       *float64 `json:"x,omitempty"`
	XAnchor string   `json:"xanchor,omitempty"`
	Font    *Font    `json:"font,omitempty"`
}

type Margin struct {
	T int `json:"t"`
	L int `json:"l"`
	R int `json:"r"`
	B int `json:"b"`
}

type Axis struct {
	Title     *Title    `json:"title,omitempty"`
	ShowLine  bool      `json:"showline"`
	LineColor string    `json:"linecolor,omitempty"`
	LineWidth float64   `json:"linewidth,omitempty"`
	Mirror    bool      `json:"mirror"`
	ShowGrid  bool      `json:"showgrid"`
	ZeroLine  *bool     `json:"zeroline,omitempty"`
	Range     []float64 `json:"range,omitempty"`
	TickMode  string    `json:"tickmode,omitempty"`
	TickVals  []float64 `json:"tickvals,omitempty"`
	TickText  []string  `json:"ticktext,omitempty"`
	TickAngle int       `json:"tickangle,omitempty"`
	TickFont  *Font     `json:"tickfont,omitempty"`
}

type Legend struct {
	Title       *Title  `json:"title,omitempty"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	XAnchor     string  `json:"xanchor,omitempty"`
	YAnchor     string  `json:"yanchor,omitempty"`
	BGColor     string  `json:"bgcolor,omitempty"`
	BorderColor string  `json:"bordercolor,omitempty"`
	BorderWidth float64 `json:"borderwidth,omitempty"`
	Font        *Font   `json:"font,omitempty"`
}

type Layout struct {
	Title        Title   `json:"title"`
	PaperBGColor string  `json:"paper_bgcolor,omitempty"`
	PlotBGColor  string  `json:"plot_bgcolor,omitempty"`
	Margin       *Margin `json:"margin,omitempty"`
	XAxis        Axis    `json:"xaxis"`
	YAxis        Axis    `json:"yaxis"`
	Legend       *Legend `json:"legend,omitempty"`
}

func boolPtr(v bool) *bool { return &v }

func floatPtr(v float64) *float64 { return &v }

// whiteLayout mirrors the plotly_white template the dashboard uses.
func whiteLayout(title string) Layout {
	return Layout{
		Title:        Title{Text: title},
		PaperBGColor: "white",
		PlotBGColor:  "white",
	}
}

func framedAxis(title string) Axis {
	a := Axis{ShowLine: true, LineColor: "gray", LineWidth: 1, Mirror: true, ShowGrid: true}
	if title != "" {
		a.Title = &Title{Text: title}
	}
	return a
}

package chart

import (
	"encoding/json"
	"fmt"
	"math"
)

type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

type ColorStop struct {
	Pos   float64
	Color RGB
}

func (s ColorStop) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{s.Pos, s.Color.String()})
}

func (s *ColorStop) UnmarshalJSON(b []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("color stop: %w", err)
	}
	if err := json.Unmarshal(raw[0], &s.Pos); err != nil {
		return fmt.Errorf("color stop position: %w", err)
	}
	var c string
	if err := json.Unmarshal(raw[1], &c); err != nil {
		return fmt.Errorf("color stop color: %w", err)
	}
	if _, err := fmt.Sscanf(c, "rgb(%d,%d,%d)", &s.Color.R, &s.Color.G, &s.Color.B); err != nil {
		return fmt.Errorf("color stop %q: %w", c, err)
	}
	return nil
}

type ColorScale []ColorStop

// RdBu is the ColorBrewer red-blue diverging scale: red for the lowest values,
// blue for the highest, light gray at the midpoint.
var RdBu = evenScale(
	RGB{103, 0, 31},
	RGB{178, 24, 43},
	RGB{214, 96, 77},
	RGB{244, 165, 130},
	RGB{253, 219, 199},
	RGB{247, 247, 247},
	RGB{209, 229, 240},
	RGB{146, 197, 222},
	RGB{67, 147, 195},
	RGB{33, 102, 172},
	RGB{5, 48, 97},
)

// Neutral is the midpoint color of RdBu.
var Neutral = RGB{247, 247, 247}

func evenScale(colors ...RGB) ColorScale {
	out := make(ColorScale, len(colors))
	last := float64(len(colors) - 1)
	for i, c := range colors {
		out[i] = ColorStop{Pos: float64(i) / last, Color: c}
	}
	return out
}

// ColorAt maps v within [cmin, cmax] onto the scale with linear interpolation
// between stops. Values outside the range are clamped; a zero-width range maps
// to the midpoint.
func ColorAt(scale ColorScale, v, cmin, cmax float64) RGB {
	if len(scale) == 0 {
		return Neutral
	}
	t := 0.5
	if cmax > cmin {
		t = (v - cmin) / (cmax - cmin)
	}
	if math.IsNaN(t) {
		t = 0.5
	}
	t = math.Max(0, math.Min(1, t))
	for i := 1; i < len(scale); i++ {
		lo, hi := scale[i-1], scale[i]
		if t > hi.Pos {
			continue
		}
		span := hi.Pos - lo.Pos
		if span <= 0 {
			return hi.Color
		}
		f := (t - lo.Pos) / span
		return RGB{
			R: lerp(lo.Color.R, hi.Color.R, f),
			G: lerp(lo.Color.G, hi.Color.G, f),
			B: lerp(lo.Color.B, hi.Color.B, f),
		}
	}
	return scale[len(scale)-1].Color
}

func lerp(a, b uint8, f float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
}

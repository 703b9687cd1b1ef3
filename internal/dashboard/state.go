// Package dashboard holds the filter state and the recomputation pass that
// turns one user interaction into bounds, subsets and charts.
package dashboard

import (
	"errors"
	"fmt"
)

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) IsZero() bool {
	return r == Range{}
}

type FilterState struct {
	Brand   string `json:"brand"`
	Model   string `json:"model"`
	Age     Range  `json:"age"`
	Mileage Range  `json:"mileage"`
	Power   Range  `json:"power"`
}

func (s FilterState) IsZero() bool {
	return s == FilterState{}
}

func (s FilterState) rangesZero() bool {
	return s.Age.IsZero() && s.Mileage.IsZero() && s.Power.IsZero()
}

// Validate rejects inverted ranges.
func (s FilterState) Validate() error {
	var errs []error
	for _, r := range []struct {
		name string
		r    Range
	}{{"age", s.Age}, {"mileage", s.Mileage}, {"power", s.Power}} {
		if r.r.Min > r.r.Max {
			errs = append(errs, fmt.Errorf("%s range %d > %d", r.name, r.r.Min, r.r.Max))
		}
	}
	return errors.Join(errs...)
}

// Key identifies the state for caching.
func (s FilterState) Key() string {
	return fmt.Sprintf("%s|%s|%d-%d|%d-%d|%d-%d", s.Brand, s.Model,
		s.Age.Min, s.Age.Max, s.Mileage.Min, s.Mileage.Max, s.Power.Min, s.Power.Max)
}

// Field names the control a user interaction touched.
type Field string

const (
	FieldNone    Field = ""
	FieldBrand   Field = "brand"
	FieldModel   Field = "model"
	FieldAge     Field = "age"
	FieldMileage Field = "mileage"
	FieldPower   Field = "power"
)

func ParseField(v string) (Field, error) {
	switch f := Field(v); f {
	case FieldNone, FieldBrand, FieldModel, FieldAge, FieldMileage, FieldPower:
		return f, nil
	default:
		return FieldNone, fmt.Errorf("unknown control %q", v)
	}
}

// Changed reports the highest-priority field that differs between prev and
// next. Brand wins over model, model over the ranges.
func Changed(prev, next FilterState) Field {
	switch {
	case prev.Brand != next.Brand:
		return FieldBrand
	case prev.Model != next.Model:
		return FieldModel
	case prev.Age != next.Age:
		return FieldAge
	case prev.Mileage != next.Mileage:
		return FieldMileage
	case prev.Power != next.Power:
		return FieldPower
	default:
		return FieldNone
	}
}

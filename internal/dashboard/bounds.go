package dashboard

import (
	"fmt"

	"cardash/internal/listing"
	"cardash/internal/models"
)

// Slider steps used by the UI controls.
const (
	AgeStep     = 1
	MileageStep = 1000
	PowerStep   = 1
)

type SliderBounds struct {
	Min   int   `json:"min"`
	Max   int   `json:"max"`
	Step  int   `json:"step"`
	Value Range `json:"value"`
}

func newSlider(min, max, step int) SliderBounds {
	return SliderBounds{Min: min, Max: max, Step: step, Value: Range{Min: min, Max: max}}
}

type Bounds struct {
	Age     SliderBounds `json:"age"`
	Mileage SliderBounds `json:"mileage"`
	Power   SliderBounds `json:"power"`
}

// ResolveBounds computes the slider ranges for brand and model. Age and
// mileage come from the brand/model rows; power comes from every row in the
// table whose age and mileage fall inside those ranges, whatever its model.
func ResolveBounds(t *listing.Table, brand, model string) (Bounds, error) {
	sub := t.Select(func(r *models.Listing) bool {
		return r.Brand == brand && r.Model == model
	})
	if sub.Len() == 0 {
		return Bounds{}, fmt.Errorf("bounds for %s %s: %w", brand, model, listing.ErrEmptySubset)
	}
	age := Range{Min: sub.Rows[0].VehicleAge, Max: sub.Rows[0].VehicleAge}
	mileage := Range{Min: sub.Rows[0].Mileage, Max: sub.Rows[0].Mileage}
	for _, r := range sub.Rows[1:] {
		age = widen(age, r.VehicleAge)
		mileage = widen(mileage, r.Mileage)
	}

	broad := t.Select(func(r *models.Listing) bool {
		return age.Contains(r.VehicleAge) && mileage.Contains(r.Mileage)
	})
	// broad always includes the brand/model rows.
	power := Range{Min: broad.Rows[0].PowerHP, Max: broad.Rows[0].PowerHP}
	for _, r := range broad.Rows[1:] {
		power = widen(power, r.PowerHP)
	}

	return Bounds{
		Age:     newSlider(age.Min, age.Max, AgeStep),
		Mileage: newSlider(mileage.Min, mileage.Max, MileageStep),
		Power:   newSlider(power.Min, power.Max, PowerStep),
	}, nil
}

func widen(r Range, v int) Range {
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
	return r
}

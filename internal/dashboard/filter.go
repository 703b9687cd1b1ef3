package dashboard

import (
	"cardash/internal/listing"
	"cardash/internal/models"
)

func inRanges(s FilterState, r *models.Listing) bool {
	return s.Age.Contains(r.VehicleAge) && s.Mileage.Contains(r.Mileage) && s.Power.Contains(r.PowerHP)
}

// StrictSubset feeds the price/age scatter.
func StrictSubset(t *listing.Table, s FilterState) listing.Subset {
	return t.Select(func(r *models.Listing) bool {
		return r.Brand == s.Brand && r.Model == s.Model && inRanges(s, r)
	})
}

// BroadSubset ignores brand and model so other models show up for comparison.
func BroadSubset(t *listing.Table, s FilterState) listing.Subset {
	return t.Select(func(r *models.Listing) bool {
		return inRanges(s, r)
	})
}

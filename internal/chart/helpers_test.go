package chart

import (
	"github.com/shopspring/decimal"

	"cardash/internal/listing"
	"cardash/internal/models"
)

func listingRow(model string, age, power int, price, predicted float64, fuel string) models.Listing {
	return models.Listing{
		Brand:          "Volkswagen",
		Model:          model,
		VehicleAge:     age,
		Mileage:        age * 1000,
		PowerHP:        power,
		Price:          decimal.NewFromFloat(price),
		PredictedPrice: decimal.NewFromFloat(predicted),
		URL:            "lst/" + model,
		Fuel:           fuel,
	}
}

func fullSubset(rows ...models.Listing) listing.Subset {
	return listing.NewSubset(rows, []string{
		models.ColBrand, models.ColModel, models.ColVehicleAge, models.ColMileage, models.ColPowerHP,
		models.ColPrice, models.ColPredictedPrice, models.ColURL, models.ColFuel,
	})
}

func priced(model string, prices ...float64) []models.Listing {
	out := make([]models.Listing, 0, len(prices))
	for _, p := range prices {
		out = append(out, listingRow(model, 12, 100, p, p, "Benzine"))
	}
	return out
}

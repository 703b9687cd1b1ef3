package listing

import (
	"github.com/shopspring/decimal"

	"cardash/internal/models"
)

func row(brand, model string, age, mileage, power int, price int64) models.Listing {
	return models.Listing{
		Brand:          brand,
		Model:          model,
		VehicleAge:     age,
		Mileage:        mileage,
		PowerHP:        power,
		Price:          decimal.NewFromInt(price),
		PredictedPrice: decimal.NewFromInt(price),
		URL:            "lst/" + brand + "-" + model,
		Fuel:           "Benzine",
	}
}

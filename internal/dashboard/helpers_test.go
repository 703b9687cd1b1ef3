package dashboard

import (
	"github.com/shopspring/decimal"

	"cardash/internal/listing"
	"cardash/internal/models"
)

func car(brand, model string, age, mileage, power int, price int64) models.Listing {
	return models.Listing{
		Brand:          brand,
		Model:          model,
		VehicleAge:     age,
		Mileage:        mileage,
		PowerHP:        power,
		Price:          decimal.NewFromInt(price),
		PredictedPrice: decimal.NewFromInt(price + 500),
		URL:            "lst/" + model,
		Fuel:           "Benzine",
	}
}

func table(rows ...models.Listing) *listing.Table {
	return listing.NewTable(rows, []string{
		models.ColBrand, models.ColModel, models.ColVehicleAge, models.ColMileage, models.ColPowerHP,
		models.ColPrice, models.ColPredictedPrice, models.ColURL, models.ColFuel,
	})
}

func fixture() *listing.Table {
	return table(
		car("Volkswagen", "Golf", 10, 5000, 100, 20000),
		car("Volkswagen", "Golf", 20, 15000, 150, 18000),
		car("Volkswagen", "Polo", 30, 40000, 70, 9000),
		car("Volkswagen", "Polo", 36, 50000, 75, 8000),
		car("Opel", "Astra", 15, 9000, 200, 15000),
		car("Opel", "Astra", 25, 30000, 60, 11000),
		car("Opel", "Corsa", 12, 8000, 90, 10000),
	)
}

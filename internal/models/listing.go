package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Column names of the listing table as the dashboard expects them after the
// source columns have been renamed.
const (
	ColBrand          = "brand"
	ColModel          = "model"
	ColVehicleAge     = "vehicle_age"
	ColMileage        = "mileage"
	ColPowerHP        = "power_HP"
	ColPrice          = "price"
	ColPredictedPrice = "predicted_price"
	ColURL            = "URL"
	ColFuel           = "fuel"
	ColPctDiff        = "pct_diff"
)

// SourceRenames maps feature-store column names to dashboard column names.
var SourceRenames = map[string]string{
	"url":      ColURL,
	"power_hp": ColPowerHP,
}

// StoredColumns is the column set of a listing read back from postgres.
var StoredColumns = []string{
	ColBrand, ColModel, ColVehicleAge, ColMileage, ColPowerHP,
	ColPrice, ColPredictedPrice, ColURL, ColFuel, ColPctDiff,
}

type Listing struct {
	ID             uint64          `gorm:"primaryKey;autoIncrement"`
	Brand          string          `gorm:"type:text;index:idx_listing_brand_model;not null"`
	Model          string          `gorm:"type:text;index:idx_listing_brand_model;not null"`
	VehicleAge     int             `gorm:"not null;comment:age in months"`
	Mileage        int             `gorm:"not null;comment:km"`
	PowerHP        int             `gorm:"column:power_hp;not null"`
	Price          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PredictedPrice decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PctDiff        *float64        `gorm:"column:pct_diff"`
	URL            string          `gorm:"column:url;type:text;uniqueIndex;not null"`
	Fuel           string          `gorm:"type:text;not null"`
	Extra          datatypes.JSON  `gorm:"type:jsonb;comment:unmapped source columns"`
	LoadedAt       time.Time       `gorm:"type:timestamptz;not null"`
}

func (Listing) TableName() string {
	return "car_listings"
}

// PriceFloat returns the listing price as float64 for chart math.
func (l Listing) PriceFloat() float64 {
	f, _ := l.Price.Float64()
	return f
}

// PredictedFloat returns the predicted price as float64 for chart math.
func (l Listing) PredictedFloat() float64 {
	f, _ := l.PredictedPrice.Float64()
	return f
}

// ComputePctDiff returns (predicted - price) / predicted * 100. A zero
// prediction yields 0.
func (l Listing) ComputePctDiff() float64 {
	if l.PredictedPrice.IsZero() {
		return 0
	}
	pct := l.PredictedPrice.Sub(l.Price).Div(l.PredictedPrice).Mul(decimal.NewFromInt(100))
	f, _ := pct.Float64()
	return f
}

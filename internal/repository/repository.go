package repository

import (
	"context"

	"gorm.io/gorm"

	"cardash/internal/models"
)

// ListingRepository stores listing snapshots. The dashboard only reads them
// once at startup; the import command writes them.
type ListingRepository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error
	UpsertListings(ctx context.Context, items []models.Listing, batchSize int) (int, error)
	AllListings(ctx context.Context) ([]models.Listing, error)
	ListListings(ctx context.Context, params ListListingsParams) ([]models.Listing, error)
	CountListings(ctx context.Context, params ListListingsParams) (int64, error)
	ListBrandModels(ctx context.Context) ([]BrandModelCount, error)
}

type ListListingsParams struct {
	Limit   int
	Offset  int
	Brand   *string
	Model   *string
	Fuel    *string
	OrderBy string
	Asc     *bool
}

type BrandModelCount struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Count int64  `json:"count"`
}

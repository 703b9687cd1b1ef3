package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"cardash/internal/models"
	"cardash/internal/repository"
)

type stubRepo struct {
	batches [][]models.Listing
	stored  map[string]models.Listing
	failAt  int
}

func newStubRepo() *stubRepo {
	return &stubRepo{stored: map[string]models.Listing{}, failAt: -1}
}

func (r *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (r *stubRepo) UpsertListings(ctx context.Context, items []models.Listing, batchSize int) (int, error) {
	if r.failAt == len(r.batches) {
		return 0, errors.New("db down")
	}
	r.batches = append(r.batches, items)
	for _, it := range items {
		r.stored[it.URL] = it
	}
	return len(items), nil
}

func (r *stubRepo) AllListings(ctx context.Context) ([]models.Listing, error) {
	out := make([]models.Listing, 0, len(r.stored))
	for _, it := range r.stored {
		out = append(out, it)
	}
	return out, nil
}

func (r *stubRepo) ListListings(ctx context.Context, params repository.ListListingsParams) ([]models.Listing, error) {
	var out []models.Listing
	for _, it := range r.stored {
		if params.Brand != nil && it.Brand != *params.Brand {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (r *stubRepo) CountListings(ctx context.Context, params repository.ListListingsParams) (int64, error) {
	items, _ := r.ListListings(ctx, params)
	return int64(len(items)), nil
}

func (r *stubRepo) ListBrandModels(ctx context.Context) ([]repository.BrandModelCount, error) {
	return nil, nil
}

package service

import (
	"context"

	"cardash/internal/models"
	"cardash/internal/repository"
)

type ListingQueryService struct {
	Repo repository.ListingRepository
}

type ListingsResult struct {
	Items []models.Listing
	Total int64
}

func (s *ListingQueryService) ListListings(ctx context.Context, params repository.ListListingsParams) (ListingsResult, error) {
	total, err := s.Repo.CountListings(ctx, params)
	if err != nil {
		return ListingsResult{}, err
	}
	items, err := s.Repo.ListListings(ctx, params)
	if err != nil {
		return ListingsResult{}, err
	}
	return ListingsResult{Items: items, Total: total}, nil
}

func (s *ListingQueryService) BrandModels(ctx context.Context) ([]repository.BrandModelCount, error) {
	return s.Repo.ListBrandModels(ctx)
}

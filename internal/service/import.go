package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cardash/internal/models"
	"cardash/internal/repository"
)

// ImportService writes listing rows to the database in chunks so progress
// can be reported between them.
type ImportService struct {
	Repo      repository.ListingRepository
	BatchSize int
	Logger    *zap.Logger
	// Progress is called with the number of input rows handled so far.
	Progress func(done int)
}

type ImportResult struct {
	Read    int   `json:"read"`
	Written int   `json:"written"`
	Total   int64 `json:"total"`
}

func (s *ImportService) Import(ctx context.Context, rows []models.Listing) (ImportResult, error) {
	size := s.BatchSize
	if size <= 0 {
		size = 500
	}
	res := ImportResult{Read: len(rows)}
	for i := 0; i < len(rows); i += size {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		end := min(i+size, len(rows))
		n, err := s.Repo.UpsertListings(ctx, rows[i:end], size)
		if err != nil {
			return res, fmt.Errorf("upsert rows %d-%d: %w", i, end, err)
		}
		res.Written += n
		if s.Progress != nil {
			s.Progress(end)
		}
	}
	total, err := s.Repo.CountListings(ctx, repository.ListListingsParams{})
	if err != nil {
		return res, err
	}
	res.Total = total
	if s.Logger != nil {
		s.Logger.Info("listings imported",
			zap.Int("read", res.Read),
			zap.Int("written", res.Written),
			zap.Int64("total", res.Total),
		)
	}
	return res, nil
}

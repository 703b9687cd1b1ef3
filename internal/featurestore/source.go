package featurestore

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cardash/internal/listing"
	"cardash/internal/models"
)

// Source loads the listing table from a feature group.
type Source struct {
	Client       *Client
	FeatureGroup string
	Version      int
	Logger       *zap.Logger
}

func (s *Source) Load(ctx context.Context) ([]models.Listing, []string, error) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()
	columns, records, err := s.Client.ReadFeatureGroup(ctx, s.FeatureGroup, s.Version, func(n int) {
		logger.Debug("feature group page", zap.String("group", s.FeatureGroup), zap.Int("rows", n))
	})
	if err != nil {
		return nil, nil, err
	}
	columns = listing.NormalizeColumns(append([]string(nil), columns...))

	loadedAt := time.Now().UTC()
	rows := make([]models.Listing, 0, len(records))
	for i, rec := range records {
		normalized := make(map[string]any, len(rec))
		for k, v := range rec {
			normalized[listing.NormalizeColumn(k)] = v
		}
		l, err := listing.ParseRecord(normalized, loadedAt)
		if err != nil {
			return nil, nil, fmt.Errorf("feature group %s row %d: %w", s.FeatureGroup, i, err)
		}
		rows = append(rows, l)
	}
	logger.Info("feature group loaded",
		zap.String("group", s.FeatureGroup),
		zap.Int("version", s.Version),
		zap.Int("rows", len(rows)),
		zap.Duration("took", time.Since(start)),
	)
	return rows, columns, nil
}

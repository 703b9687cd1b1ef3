package cronrunner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cardash/internal/cache"
)

// SweepJob drops expired figure cache entries.
func SweepJob(s cache.Sweeper, logger *zap.Logger) func(context.Context) error {
	return func(ctx context.Context) error {
		_ = ctx
		if n := s.Sweep(time.Now()); n > 0 && logger != nil {
			logger.Info("figure cache swept", zap.Int("removed", n))
		}
		return nil
	}
}

// Package cache stores rendered figure payloads keyed by filter state.
package cache

import (
	"context"
	"time"
)

type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Sweeper is implemented by stores that need expired entries removed
// explicitly. Redis expires keys on its own.
type Sweeper interface {
	Sweep(now time.Time) int
}

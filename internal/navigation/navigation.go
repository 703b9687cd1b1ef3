// Package navigation turns a clicked listing into an external page visit.
// Chart code only emits the target URL; a Navigator performs the launch.
package navigation

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const DefaultBaseURL = "https://www.autoscout24.nl/"

// ListingURL joins the listing site base with a relative listing path.
func ListingURL(base, relative string) string {
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(relative, "/")
}

type Navigator interface {
	Open(ctx context.Context, url string) error
}

// NopNavigator records requested URLs without launching anything. Used when
// the server runs headless.
type NopNavigator struct {
	Logger *zap.Logger

	mu     sync.Mutex
	opened []string
}

func (n *NopNavigator) Open(ctx context.Context, url string) error {
	_ = ctx
	n.mu.Lock()
	n.opened = append(n.opened, url)
	n.mu.Unlock()
	if n.Logger != nil {
		n.Logger.Info("navigation requested", zap.String("url", url))
	}
	return nil
}

func (n *NopNavigator) Opened() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.opened...)
}

const dispatchTimeout = 30 * time.Second

// Dispatch opens url on its own goroutine and returns immediately. Failures
// are logged. The returned channel is closed once Open has returned.
func Dispatch(nav Navigator, url string, logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	if nav == nil {
		close(done)
		return done
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	go func() {
		defer close(done)
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		if err := nav.Open(ctx, url); err != nil {
			logger.Warn("open listing failed", zap.String("url", url), zap.Error(err))
		}
	}()
	return done
}

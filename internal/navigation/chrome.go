package navigation

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/chromedp"
)

// ChromeLauncher drives a visible Chrome window and opens each listing in a
// new tab. The browser is started on first use and kept until Close.
type ChromeLauncher struct {
	ExecPath string

	mu          sync.Mutex
	browserCtx  context.Context
	cancelAlloc context.CancelFunc
	cancelCtx   context.CancelFunc
}

func (l *ChromeLauncher) browser() (context.Context, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.browserCtx != nil && l.browserCtx.Err() == nil {
		return l.browserCtx, nil
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", false),
		chromedp.Flag("disable-gpu", true),
	)
	if l.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(l.ExecPath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		cancelAlloc()
		return nil, fmt.Errorf("start chrome: %w", err)
	}
	l.browserCtx, l.cancelAlloc, l.cancelCtx = ctx, cancelAlloc, cancel
	return ctx, nil
}

func (l *ChromeLauncher) Open(ctx context.Context, url string) error {
	browserCtx, err := l.browser()
	if err != nil {
		return err
	}
	// The tab outlives the call; it closes with the browser.
	tabCtx, cancelTab := chromedp.NewContext(browserCtx)
	_ = cancelTab
	errCh := make(chan error, 1)
	go func() { errCh <- chromedp.Run(tabCtx, chromedp.Navigate(url)) }()
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("navigate %s: %w", url, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *ChromeLauncher) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancelCtx != nil {
		l.cancelCtx()
		l.cancelAlloc()
	}
	l.browserCtx, l.cancelCtx, l.cancelAlloc = nil, nil, nil
}

package cronrunner

import (
	"context"
	"errors"
	"testing"
	"time"

	"cardash/internal/cache"
)

func TestAddRejectsBadSpec(t *testing.T) {
	r := New(nil, nil)
	if _, err := r.Add("bad", "not a spec", func(context.Context) error { return nil }); err == nil {
		t.Fatalf("expected error for invalid spec")
	}
	if _, err := r.Add("sweep", "@every 10m", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("err=%v", err)
	}
	if r.Entries() != 1 {
		t.Fatalf("entries=%d want=1", r.Entries())
	}
}

func TestRunPassesBaseContextAndSwallowsErrors(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "base")
	r := New(nil, ctx)
	var got any
	r.run("job", func(c context.Context) error {
		got = c.Value(key{})
		return errors.New("boom")
	})
	if got != "base" {
		t.Fatalf("ctx value=%v want=base", got)
	}
}

func TestSweepJob(t *testing.T) {
	store := cache.NewMemoryStore()
	_ = store.Set(context.Background(), "k", []byte("v"), time.Nanosecond)
	time.Sleep(time.Millisecond)
	if err := SweepJob(store, nil)(context.Background()); err != nil {
		t.Fatalf("err=%v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("len=%d want=0", store.Len())
	}
}

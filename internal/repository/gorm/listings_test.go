package gormrepository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"cardash/internal/models"
)

func TestDedupeByURLKeepsLastAndOrder(t *testing.T) {
	items := []models.Listing{
		{URL: "a", Price: decimal.NewFromInt(1)},
		{URL: "b", Price: decimal.NewFromInt(2)},
		{URL: " "},
		{URL: "a", Price: decimal.NewFromInt(3)},
	}
	out := dedupeByURL(items)
	if len(out) != 2 {
		t.Fatalf("len=%d want=2", len(out))
	}
	if out[0].URL != "a" || !out[0].Price.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("first=%+v want later a", out[0])
	}
	if out[1].URL != "b" {
		t.Fatalf("second=%s want=b", out[1].URL)
	}
}

func TestNormalizeLimit(t *testing.T) {
	if got := normalizeLimit(0, 100); got != 100 {
		t.Fatalf("limit=%d want=100", got)
	}
	if got := normalizeLimit(9999, 100); got != 500 {
		t.Fatalf("limit=%d want=500", got)
	}
	if got := normalizeOffset(-3); got != 0 {
		t.Fatalf("offset=%d want=0", got)
	}
}

func TestNilStoreIsNoop(t *testing.T) {
	var s *Store
	n, err := s.UpsertListings(context.Background(), []models.Listing{{URL: "a"}}, 10)
	if err != nil || n != 0 {
		t.Fatalf("n=%d err=%v", n, err)
	}
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cardash/internal/models"
	"cardash/internal/repository"
	"cardash/internal/service"
)

type stubListingRepo struct {
	items  []models.Listing
	counts []repository.BrandModelCount
	err    error
	last   repository.ListListingsParams
}

func (s *stubListingRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (s *stubListingRepo) UpsertListings(ctx context.Context, items []models.Listing, batchSize int) (int, error) {
	return len(items), s.err
}

func (s *stubListingRepo) AllListings(ctx context.Context) ([]models.Listing, error) {
	return s.items, s.err
}

func (s *stubListingRepo) ListListings(ctx context.Context, params repository.ListListingsParams) ([]models.Listing, error) {
	s.last = params
	return s.items, s.err
}

func (s *stubListingRepo) CountListings(ctx context.Context, params repository.ListListingsParams) (int64, error) {
	return int64(len(s.items)), s.err
}

func (s *stubListingRepo) ListBrandModels(ctx context.Context) ([]repository.BrandModelCount, error) {
	return s.counts, s.err
}

func listingEngine(repo repository.ListingRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	(&ListingHandler{QueryService: &service.ListingQueryService{Repo: repo}}).Register(r)
	return r
}

func TestListListingsPassesFilters(t *testing.T) {
	repo := &stubListingRepo{items: []models.Listing{car("Opel", "Corsa", 12, 8000, 90, 10000, 9000, "listing/5")}}
	r := listingEngine(repo)

	w, env := do(t, r, http.MethodGet, "/api/listings?brand=Opel&limit=5&order_by=power&asc=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, env.Meta["total"])
	require.NotNil(t, repo.last.Brand)
	assert.Equal(t, "Opel", *repo.last.Brand)
	assert.Nil(t, repo.last.Model)
	assert.Equal(t, 5, repo.last.Limit)
	assert.Equal(t, "power_hp", repo.last.OrderBy)
	require.NotNil(t, repo.last.Asc)
	assert.True(t, *repo.last.Asc)

	// Unknown order keys fall back to the store default.
	_, _ = do(t, r, http.MethodGet, "/api/listings?order_by=drop", "")
	assert.Equal(t, "", repo.last.OrderBy)
}

func TestListBrandModels(t *testing.T) {
	repo := &stubListingRepo{counts: []repository.BrandModelCount{{Brand: "Opel", Model: "Corsa", Count: 3}}}
	w, env := do(t, listingEngine(repo), http.MethodGet, "/api/listings/brand-models", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got []repository.BrandModelCount
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, repo.counts, got)
}

func TestListListingsStoreError(t *testing.T) {
	repo := &stubListingRepo{err: errors.New("connection refused")}
	w, env := do(t, listingEngine(repo), http.MethodGet, "/api/listings", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, env.Message, "connection refused")
}

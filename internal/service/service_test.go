package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardash/internal/config"
	"cardash/internal/featurestore"
	"cardash/internal/models"
	"cardash/internal/repository"
)

func listings(n int) []models.Listing {
	out := make([]models.Listing, n)
	for i := range out {
		out[i] = models.Listing{Brand: "Opel", Model: "Corsa", URL: fmt.Sprintf("lst/%d", i)}
	}
	return out
}

func TestImportInChunksReportsProgress(t *testing.T) {
	repo := newStubRepo()
	var progress []int
	svc := &ImportService{Repo: repo, BatchSize: 2, Progress: func(n int) { progress = append(progress, n) }}

	res, err := svc.Import(context.Background(), listings(5))
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Read: 5, Written: 5, Total: 5}, res)
	assert.Len(t, repo.batches, 3)
	assert.Equal(t, []int{2, 4, 5}, progress)
}

func TestImportStopsOnError(t *testing.T) {
	repo := newStubRepo()
	repo.failAt = 1
	svc := &ImportService{Repo: repo, BatchSize: 2}

	res, err := svc.Import(context.Background(), listings(5))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rows 2-4")
	assert.Equal(t, 2, res.Written)
}

func TestListingQueryFiltersByBrand(t *testing.T) {
	repo := newStubRepo()
	_, _ = repo.UpsertListings(context.Background(), []models.Listing{
		{Brand: "Opel", URL: "a"}, {Brand: "Fiat", URL: "b"},
	}, 10)
	brand := "Fiat"
	res, err := (&ListingQueryService{Repo: repo}).ListListings(context.Background(), repository.ListListingsParams{Brand: &brand})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)
	assert.Equal(t, "b", res.Items[0].URL)
}

func TestTableLoaderSources(t *testing.T) {
	cfg := config.Config{Source: config.SourceConfig{Kind: config.SourceFeatureStore}}
	cfg.FeatureStore.FeatureGroup = "batch_data_cars"
	cfg.FeatureStore.Version = 3
	src, err := TableLoader{Config: cfg}.Source()
	require.NoError(t, err)
	fsSrc, ok := src.(*featurestore.Source)
	require.True(t, ok)
	assert.Equal(t, "batch_data_cars", fsSrc.FeatureGroup)

	cfg.Source.Kind = config.SourcePostgres
	_, err = TableLoader{Config: cfg}.Source()
	assert.ErrorIs(t, err, ErrNoDatabase)
}

func TestTableLoaderCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cars.csv")
	csv := ",brand,model,vehicle_age,mileage,power_hp,price,predicted_price,url,fuel\n" +
		"0,Opel,Corsa,12,8000,90,10000,10500,lst/1,Benzine\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	cfg := config.Config{Source: config.SourceConfig{Kind: config.SourceCSV, CSVPath: path}}
	tbl, err := TableLoader{Config: cfg}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())
	got, err := tbl.Models("Opel")
	require.NoError(t, err)
	assert.Equal(t, []string{"Corsa"}, got)

	cfg.Source.CSVPath = filepath.Join(t.TempDir(), "missing.csv")
	_, err = TableLoader{Config: cfg}.Load(context.Background())
	assert.Error(t, err)
}


package gormrepository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cardash/internal/models"
	"cardash/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

var _ repository.ListingRepository = (*Store)(nil)

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

var listingUpdateColumns = []string{
	"brand",
	"model",
	"vehicle_age",
	"mileage",
	"power_hp",
	"price",
	"predicted_price",
	"pct_diff",
	"fuel",
	"extra",
	"loaded_at",
}

// UpsertListings writes items keyed by url, later rows winning. It returns
// the number of distinct listings written.
func (s *Store) UpsertListings(ctx context.Context, items []models.Listing, batchSize int) (int, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	items = dedupeByURL(items)
	if len(items) == 0 {
		return 0, nil
	}
	err := s.InTx(ctx, func(tx *gorm.DB) error {
		return createInBatches(tx, items, batchSize, clause.OnConflict{
			Columns:   []clause.Column{{Name: "url"}},
			DoUpdates: clause.AssignmentColumns(listingUpdateColumns),
		})
	})
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// AllListings returns every stored row in insertion order so brand and model
// ordering matches the imported file.
func (s *Store) AllListings(ctx context.Context) ([]models.Listing, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Listing
	if err := s.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Load implements listing.Source.
func (s *Store) Load(ctx context.Context) ([]models.Listing, []string, error) {
	items, err := s.AllListings(ctx)
	if err != nil {
		return nil, nil, err
	}
	return items, append([]string(nil), models.StoredColumns...), nil
}

func (s *Store) ListListings(ctx context.Context, params repository.ListListingsParams) ([]models.Listing, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := filterListings(s.db.WithContext(ctx).Model(&models.Listing{}), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "id")
	limit := normalizeLimit(params.Limit, 100)
	offset := normalizeOffset(params.Offset)
	var items []models.Listing
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountListings(ctx context.Context, params repository.ListListingsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := filterListings(s.db.WithContext(ctx).Model(&models.Listing{}), params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) ListBrandModels(ctx context.Context) ([]repository.BrandModelCount, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var out []repository.BrandModelCount
	err := s.db.WithContext(ctx).Model(&models.Listing{}).
		Select("brand, model, count(*) as count").
		Group("brand, model").
		Order("brand asc, model asc").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func filterListings(query *gorm.DB, params repository.ListListingsParams) *gorm.DB {
	if params.Brand != nil && *params.Brand != "" {
		query = query.Where("brand = ?", *params.Brand)
	}
	if params.Model != nil && *params.Model != "" {
		query = query.Where("model = ?", *params.Model)
	}
	if params.Fuel != nil && *params.Fuel != "" {
		query = query.Where("fuel = ?", *params.Fuel)
	}
	return query
}

// Postgres rejects an ON CONFLICT batch that touches the same key twice.
func dedupeByURL(items []models.Listing) []models.Listing {
	index := make(map[string]int, len(items))
	out := make([]models.Listing, 0, len(items))
	for _, item := range items {
		key := strings.TrimSpace(item.URL)
		if key == "" {
			continue
		}
		if i, ok := index[key]; ok {
			out[i] = item
			continue
		}
		index[key] = len(out)
		out = append(out, item)
	}
	return out
}

var orderableColumns = map[string]struct{}{
	"id": {}, "brand": {}, "model": {}, "vehicle_age": {}, "mileage": {},
	"power_hp": {}, "price": {}, "predicted_price": {}, "pct_diff": {}, "loaded_at": {},
}

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if _, ok := orderableColumns[column]; !ok {
		column = fallback
	}
	direction := "desc"
	if asc != nil && *asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

func createInBatches[T any](db *gorm.DB, items []T, batchSize int, conds ...clause.Expression) error {
	if len(items) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 200
	}
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		batch := items[i:end]
		if err := db.Clauses(conds...).Create(&batch).Error; err != nil {
			return err
		}
	}
	return nil
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

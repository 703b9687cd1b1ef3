package listing

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cardash/internal/models"
)

var (
	ErrEmptySubset  = errors.New("no listings match the selection")
	ErrUnknownBrand = errors.New("unknown brand")
	ErrUnknownModel = errors.New("unknown model")
)

// FilterColumns must be present in every loaded table; the sliders and
// dropdowns cannot work without them.
var FilterColumns = []string{
	models.ColBrand, models.ColModel, models.ColVehicleAge, models.ColMileage, models.ColPowerHP,
}

// Source produces the raw listing rows and the column names the source carried.
type Source interface {
	Load(ctx context.Context) ([]models.Listing, []string, error)
}

// Table is the immutable in-memory listing dataset. It is built once at start
// and shared read-only by every request.
type Table struct {
	rows    []models.Listing
	columns map[string]struct{}
	brands  []string
	models  map[string][]string
}

// Load reads rows from src and freezes them into a Table.
func Load(ctx context.Context, src Source) (*Table, error) {
	rows, columns, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load listings: %w", err)
	}
	t := NewTable(rows, columns)
	if missing := t.All().Missing(FilterColumns...); len(missing) > 0 {
		return nil, fmt.Errorf("load listings: source lacks columns %v", missing)
	}
	return t, nil
}

// NewTable copies rows and indexes brands and models in order of first appearance.
func NewTable(rows []models.Listing, columns []string) *Table {
	t := &Table{
		rows:    make([]models.Listing, len(rows)),
		columns: columnSet(columns),
		models:  map[string][]string{},
	}
	copy(t.rows, rows)
	seenModel := map[string]map[string]struct{}{}
	for _, row := range t.rows {
		if _, ok := seenModel[row.Brand]; !ok {
			seenModel[row.Brand] = map[string]struct{}{}
			t.brands = append(t.brands, row.Brand)
		}
		if _, ok := seenModel[row.Brand][row.Model]; ok {
			continue
		}
		seenModel[row.Brand][row.Model] = struct{}{}
		t.models[row.Brand] = append(t.models[row.Brand], row.Model)
	}
	return t
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Brands returns brands in order of first appearance.
func (t *Table) Brands() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.brands...)
}

// Models returns the models of brand in order of first appearance.
func (t *Table) Models(brand string) ([]string, error) {
	if t == nil {
		return nil, ErrUnknownBrand
	}
	items, ok := t.models[brand]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBrand, brand)
	}
	return append([]string(nil), items...), nil
}

// HasModel reports whether model belongs to brand.
func (t *Table) HasModel(brand, model string) bool {
	if t == nil {
		return false
	}
	for _, m := range t.models[brand] {
		if m == model {
			return true
		}
	}
	return false
}

func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}
	return sortedColumns(t.columns)
}

// All returns a subset holding a copy of every row.
func (t *Table) All() Subset {
	return t.Select(func(*models.Listing) bool { return true })
}

// Select copies the rows matching keep into a new Subset.
func (t *Table) Select(keep func(*models.Listing) bool) Subset {
	out := Subset{columns: t.columnsOrEmpty()}
	if t == nil {
		return out
	}
	for i := range t.rows {
		if keep(&t.rows[i]) {
			out.Rows = append(out.Rows, t.rows[i])
		}
	}
	return out
}

func (t *Table) columnsOrEmpty() map[string]struct{} {
	if t == nil {
		return map[string]struct{}{}
	}
	return t.columns
}

func columnSet(columns []string) map[string]struct{} {
	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	return set
}

func sortedColumns(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

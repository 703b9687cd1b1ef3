package listing

import (
	"sort"

	"cardash/internal/models"
)

// Subset is a filtered copy of table rows that still knows which columns the
// source provided. Rows may be modified freely; the table is unaffected.
type Subset struct {
	Rows    []models.Listing
	columns map[string]struct{}
}

func NewSubset(rows []models.Listing, columns []string) Subset {
	return Subset{Rows: rows, columns: columnSet(columns)}
}

func (s Subset) Len() int { return len(s.Rows) }

func (s Subset) Has(column string) bool {
	_, ok := s.columns[column]
	return ok
}

func (s Subset) Columns() []string {
	return sortedColumns(s.columns)
}

// Missing returns the required columns the subset does not carry, sorted.
func (s Subset) Missing(required ...string) []string {
	var out []string
	for _, c := range required {
		if !s.Has(c) {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// Where returns the rows matching keep with the same column set.
func (s Subset) Where(keep func(*models.Listing) bool) Subset {
	out := Subset{columns: s.columns}
	for i := range s.Rows {
		if keep(&s.Rows[i]) {
			out.Rows = append(out.Rows, s.Rows[i])
		}
	}
	return out
}

// WithColumn returns a copy of the subset whose column set includes column.
func (s Subset) WithColumn(column string) Subset {
	cols := make(map[string]struct{}, len(s.columns)+1)
	for c := range s.columns {
		cols[c] = struct{}{}
	}
	cols[column] = struct{}{}
	return Subset{Rows: s.Rows, columns: cols}
}

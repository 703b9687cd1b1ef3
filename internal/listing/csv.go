package listing

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"cardash/internal/models"
)

// CSVSource reads listings from a CSV export with a header row.
type CSVSource struct {
	Path string
}

func (s *CSVSource) Load(ctx context.Context) ([]models.Listing, []string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("csv: open %q: %w", s.Path, err)
	}
	defer f.Close()
	return ReadCSV(ctx, f)
}

// ReadCSV parses listings from r. The first record is the header.
func ReadCSV(ctx context.Context, r io.Reader) ([]models.Listing, []string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("csv: empty file")
		}
		return nil, nil, fmt.Errorf("csv: read header: %w", err)
	}
	columns := NormalizeColumns(append([]string(nil), header...))
	now := time.Now().UTC()

	var rows []models.Listing
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, nil, fmt.Errorf("csv: line %d: %w", line, err)
		}
		values := make(map[string]any, len(columns))
		for i, col := range columns {
			// pandas writes its index as an unnamed first column.
			if col == "" || i >= len(rec) {
				continue
			}
			values[col] = rec[i]
		}
		row, err := ParseRecord(values, now)
		if err != nil {
			return nil, nil, fmt.Errorf("csv: line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, dropEmpty(columns), nil
}

func dropEmpty(columns []string) []string {
	out := columns[:0]
	for _, c := range columns {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

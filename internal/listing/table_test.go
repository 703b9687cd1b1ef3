package listing

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"cardash/internal/models"
)

type staticSource struct {
	rows    []models.Listing
	columns []string
	err     error
}

func (s staticSource) Load(ctx context.Context) ([]models.Listing, []string, error) {
	return s.rows, s.columns, s.err
}

func TestNewTableOrdersByFirstAppearance(t *testing.T) {
	tbl := NewTable([]models.Listing{
		row("Volkswagen", "Polo", 10, 5000, 95, 12000),
		row("Audi", "A3", 20, 15000, 150, 25000),
		row("Volkswagen", "Golf", 30, 45000, 110, 18000),
		row("Volkswagen", "Polo", 40, 60000, 75, 9000),
	}, models.StoredColumns)

	if got, want := tbl.Brands(), []string{"Volkswagen", "Audi"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("brands=%v want=%v", got, want)
	}
	vw, err := tbl.Models("Volkswagen")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if want := []string{"Polo", "Golf"}; !reflect.DeepEqual(vw, want) {
		t.Fatalf("models=%v want=%v", vw, want)
	}
	if !tbl.HasModel("Audi", "A3") || tbl.HasModel("Audi", "Polo") {
		t.Fatalf("HasModel mismatch")
	}
	if _, err := tbl.Models("Fiat"); !errors.Is(err, ErrUnknownBrand) {
		t.Fatalf("err=%v want ErrUnknownBrand", err)
	}
}

func TestSelectDoesNotMutateTable(t *testing.T) {
	tbl := NewTable([]models.Listing{row("Audi", "A3", 20, 15000, 150, 25000)}, models.StoredColumns)
	sub := tbl.All()
	pct := 12.5
	sub.Rows[0].PctDiff = &pct
	sub.Rows[0].Model = "changed"

	again := tbl.All()
	if again.Rows[0].PctDiff != nil || again.Rows[0].Model != "A3" {
		t.Fatalf("table mutated through subset: %+v", again.Rows[0])
	}
}

func TestSubsetMissing(t *testing.T) {
	sub := NewSubset(nil, []string{models.ColBrand, models.ColPrice})
	got := sub.Missing(models.ColModel, models.ColBrand, models.ColFuel)
	if want := []string{models.ColFuel, models.ColModel}; !reflect.DeepEqual(got, want) {
		t.Fatalf("missing=%v want=%v", got, want)
	}
	if !sub.WithColumn(models.ColModel).Has(models.ColModel) {
		t.Fatalf("WithColumn did not add column")
	}
	if sub.Has(models.ColModel) {
		t.Fatalf("WithColumn mutated original column set")
	}
}

func TestLoadRejectsMissingFilterColumns(t *testing.T) {
	_, err := Load(context.Background(), staticSource{columns: []string{models.ColBrand, models.ColModel}})
	if err == nil {
		t.Fatalf("expected error for missing slider columns")
	}
	tbl, err := Load(context.Background(), staticSource{
		rows:    []models.Listing{row("Audi", "A3", 20, 15000, 150, 25000)},
		columns: models.StoredColumns,
	})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if tbl.Len() != 1 {
		t.Fatalf("len=%d want=1", tbl.Len())
	}
}

func TestLoadPropagatesSourceError(t *testing.T) {
	boom := errors.New("boom")
	if _, err := Load(context.Background(), staticSource{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("err=%v want wrapped boom", err)
	}
}

package listing

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"cardash/internal/models"
)

// NormalizeColumn applies the source renames (url -> URL, power_hp -> power_HP).
func NormalizeColumn(name string) string {
	name = strings.TrimSpace(name)
	if renamed, ok := models.SourceRenames[name]; ok {
		return renamed
	}
	return name
}

// NormalizeColumns renames every column in place and returns the slice.
func NormalizeColumns(names []string) []string {
	for i, n := range names {
		names[i] = NormalizeColumn(n)
	}
	return names
}

var knownColumns = map[string]struct{}{
	models.ColBrand: {}, models.ColModel: {}, models.ColVehicleAge: {}, models.ColMileage: {},
	models.ColPowerHP: {}, models.ColPrice: {}, models.ColPredictedPrice: {}, models.ColURL: {},
	models.ColFuel: {}, models.ColPctDiff: {},
}

// ParseRecord converts one source record keyed by normalized column names into
// a Listing. Values may be strings (CSV) or JSON scalars (feature store).
// Columns the dashboard does not know are kept in Extra.
func ParseRecord(rec map[string]any, loadedAt time.Time) (models.Listing, error) {
	var (
		l   models.Listing
		err error
	)
	l.LoadedAt = loadedAt
	l.Brand = stringValue(rec[models.ColBrand])
	l.Model = stringValue(rec[models.ColModel])
	l.URL = stringValue(rec[models.ColURL])
	l.Fuel = stringValue(rec[models.ColFuel])
	if l.VehicleAge, err = intValue(rec, models.ColVehicleAge); err != nil {
		return l, err
	}
	if l.Mileage, err = intValue(rec, models.ColMileage); err != nil {
		return l, err
	}
	if l.PowerHP, err = intValue(rec, models.ColPowerHP); err != nil {
		return l, err
	}
	if l.Price, err = decimalValue(rec, models.ColPrice); err != nil {
		return l, err
	}
	if l.PredictedPrice, err = decimalValue(rec, models.ColPredictedPrice); err != nil {
		return l, err
	}
	if raw, ok := rec[models.ColPctDiff]; ok && !isBlank(raw) {
		f, err := floatValue(raw)
		if err != nil {
			return l, fmt.Errorf("column %s: %w", models.ColPctDiff, err)
		}
		if !math.IsNaN(f) {
			l.PctDiff = &f
		}
	}

	extra := map[string]any{}
	for k, v := range rec {
		if _, ok := knownColumns[k]; !ok {
			extra[k] = v
		}
	}
	if len(extra) > 0 {
		b, err := json.Marshal(extra)
		if err != nil {
			return l, err
		}
		l.Extra = datatypes.JSON(b)
	}
	return l, nil
}

func stringValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && (strings.TrimSpace(s) == "" || strings.EqualFold(strings.TrimSpace(s), "nan"))
}

func floatValue(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case json.Number:
		return x.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(x), 64)
	default:
		return 0, fmt.Errorf("unsupported value %T", v)
	}
}

func intValue(rec map[string]any, column string) (int, error) {
	raw, ok := rec[column]
	if !ok || isBlank(raw) {
		return 0, nil
	}
	f, err := floatValue(raw)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", column, err)
	}
	return int(f), nil
}

func decimalValue(rec map[string]any, column string) (decimal.Decimal, error) {
	raw, ok := rec[column]
	if !ok || isBlank(raw) {
		return decimal.Zero, nil
	}
	switch x := raw.(type) {
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Zero, fmt.Errorf("column %s: %w", column, err)
		}
		return d, nil
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		if err != nil {
			return decimal.Zero, fmt.Errorf("column %s: %w", column, err)
		}
		return d, nil
	default:
		f, err := floatValue(raw)
		if err != nil {
			return decimal.Zero, fmt.Errorf("column %s: %w", column, err)
		}
		return decimal.NewFromFloat(f), nil
	}
}

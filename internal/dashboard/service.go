package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"cardash/internal/cache"
	"cardash/internal/chart"
	"cardash/internal/listing"
	"cardash/internal/navigation"
)

const (
	AssetPrefix  = "/assets/"
	DefaultImage = AssetPrefix + "default.png"
)

var ErrNoListingURL = errors.New("clicked point carries no listing url")

// Service runs one recomputation pass per interaction over an immutable
// listing table. It is safe for concurrent use.
type Service struct {
	Table     *listing.Table
	Cache     cache.Store
	CacheTTL  time.Duration
	Navigator navigation.Navigator
	BaseURL   string
	// Assets, when set, is checked for the model image before it is offered.
	Assets fs.FS
	Logger *zap.Logger
}

type ChartPair struct {
	PriceAge   *chart.Figure `json:"price_age"`
	Comparison *chart.Figure `json:"comparison"`
}

// View is everything the page needs after one interaction.
type View struct {
	State     FilterState `json:"state"`
	Brands    []string    `json:"brands"`
	Models    []string    `json:"models"`
	Bounds    Bounds      `json:"bounds"`
	Charts    ChartPair   `json:"charts"`
	ImagePath string      `json:"image_path"`
}

func (s *Service) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// ModelOptions lists the models of brand in first-appearance order and the
// default selection.
func (s *Service) ModelOptions(brand string) ([]string, string, error) {
	models, err := s.Table.Models(brand)
	if err != nil {
		return nil, "", err
	}
	if len(models) == 0 {
		return nil, "", fmt.Errorf("models for %s: %w", brand, listing.ErrEmptySubset)
	}
	return models, models[0], nil
}

func (s *Service) Bounds(brand, model string) (Bounds, error) {
	if !s.Table.HasModel(brand, model) {
		return Bounds{}, fmt.Errorf("%s %s: %w", brand, model, listing.ErrUnknownModel)
	}
	return ResolveBounds(s.Table, brand, model)
}

// Transition applies the filter invariants to next. A brand change resets
// the model to the brand's first model; a brand or model change resets all
// ranges to the resolved bounds. When changed is FieldNone it is derived by
// comparing with prev; a zero prev means a fresh session.
func (s *Service) Transition(prev, next FilterState, changed Field) (FilterState, error) {
	if changed == FieldNone && !prev.IsZero() {
		changed = Changed(prev, next)
	}
	if next.Brand == "" {
		brands := s.Table.Brands()
		if len(brands) == 0 {
			return FilterState{}, listing.ErrEmptySubset
		}
		next.Brand = brands[0]
		changed = FieldBrand
	}
	if changed == FieldBrand || next.Model == "" {
		_, model, err := s.ModelOptions(next.Brand)
		if err != nil {
			return FilterState{}, err
		}
		if next.Model == "" && changed != FieldBrand {
			changed = FieldModel
		}
		next.Model = model
	}
	if !s.Table.HasModel(next.Brand, next.Model) {
		return FilterState{}, fmt.Errorf("%s %s: %w", next.Brand, next.Model, listing.ErrUnknownModel)
	}
	if changed == FieldBrand || changed == FieldModel || next.rangesZero() {
		b, err := ResolveBounds(s.Table, next.Brand, next.Model)
		if err != nil {
			return FilterState{}, err
		}
		next.Age, next.Mileage, next.Power = b.Age.Value, b.Mileage.Value, b.Power.Value
	}
	return next, next.Validate()
}

// Charts builds both figures for state. Results are cached by state key;
// the table never changes so entries only leave through the TTL.
func (s *Service) Charts(ctx context.Context, state FilterState) (ChartPair, error) {
	key := "charts:" + state.Key()
	if pair, ok := s.cached(ctx, key); ok {
		return pair, nil
	}

	scatter, err := chart.PriceAgeScatter(StrictSubset(s.Table, state), state.Brand, state.Model)
	if err != nil {
		return ChartPair{}, err
	}
	box, err := chart.ComparativeBoxplot(BroadSubset(s.Table, state), state.Model)
	if err != nil {
		return ChartPair{}, err
	}
	pair := ChartPair{PriceAge: scatter, Comparison: box}
	s.store(ctx, key, pair)
	return pair, nil
}

func (s *Service) cached(ctx context.Context, key string) (ChartPair, bool) {
	if s.Cache == nil {
		return ChartPair{}, false
	}
	b, found, err := s.Cache.Get(ctx, key)
	if err != nil {
		s.logger().Warn("chart cache get failed", zap.String("key", key), zap.Error(err))
		return ChartPair{}, false
	}
	if !found {
		return ChartPair{}, false
	}
	var pair ChartPair
	if err := json.Unmarshal(b, &pair); err != nil {
		s.logger().Warn("chart cache entry unreadable", zap.String("key", key), zap.Error(err))
		_ = s.Cache.Delete(ctx, key)
		return ChartPair{}, false
	}
	return pair, true
}

func (s *Service) store(ctx context.Context, key string, pair ChartPair) {
	if s.Cache == nil {
		return
	}
	b, err := json.Marshal(pair)
	if err != nil {
		s.logger().Warn("chart cache encode failed", zap.Error(err))
		return
	}
	if err := s.Cache.Set(ctx, key, b, s.CacheTTL); err != nil {
		s.logger().Warn("chart cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// View performs the whole pass for one interaction.
func (s *Service) View(ctx context.Context, prev, next FilterState, changed Field) (*View, error) {
	state, err := s.Transition(prev, next, changed)
	if err != nil {
		return nil, err
	}
	models, _, err := s.ModelOptions(state.Brand)
	if err != nil {
		return nil, err
	}
	bounds, err := ResolveBounds(s.Table, state.Brand, state.Model)
	if err != nil {
		return nil, err
	}
	charts, err := s.Charts(ctx, state)
	if err != nil {
		return nil, err
	}
	return &View{
		State:     state,
		Brands:    s.Table.Brands(),
		Models:    models,
		Bounds:    bounds,
		Charts:    charts,
		ImagePath: s.ImagePath(state.Model),
	}, nil
}

// ImagePath maps a model to its picture, falling back to the default image
// when there is no model or the asset is missing.
func (s *Service) ImagePath(model string) string {
	if model == "" {
		return DefaultImage
	}
	name := strings.ToLower(model) + ".png"
	if s.Assets != nil {
		if _, err := fs.Stat(s.Assets, name); err != nil {
			return DefaultImage
		}
	}
	return path.Join(AssetPrefix, name)
}

// Click resolves the listing behind a scatter point and hands it to the
// navigator without waiting. Chart state is untouched.
func (s *Service) Click(ctx context.Context, customdata []any) (string, error) {
	_ = ctx
	if len(customdata) <= chart.CustomURL {
		return "", ErrNoListingURL
	}
	rel, ok := customdata[chart.CustomURL].(string)
	if !ok || strings.TrimSpace(rel) == "" {
		return "", ErrNoListingURL
	}
	url := navigation.ListingURL(s.BaseURL, rel)
	navigation.Dispatch(s.Navigator, url, s.logger())
	s.logger().Info("listing clicked", zap.String("url", url))
	return url, nil
}

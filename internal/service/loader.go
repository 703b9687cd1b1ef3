package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"cardash/internal/config"
	"cardash/internal/db"
	"cardash/internal/featurestore"
	"cardash/internal/listing"
	gormrepository "cardash/internal/repository/gorm"
)

var ErrNoDatabase = errors.New("source kind postgres needs db.dsn")

// TableLoader picks the listing source named by config and loads the table
// once.
type TableLoader struct {
	Config config.Config
	DB     *db.DB
	Logger *zap.Logger
}

func (l TableLoader) Source() (listing.Source, error) {
	switch l.Config.Source.Kind {
	case config.SourceFeatureStore:
		fs := l.Config.FeatureStore
		return &featurestore.Source{
			Client: &featurestore.Client{
				BaseURL: fs.BaseURL,
				APIKey:  fs.APIKey,
				Project: fs.Project,
				HTTP:    &http.Client{Timeout: fs.Timeout},
			},
			FeatureGroup: fs.FeatureGroup,
			Version:      fs.Version,
			Logger:       l.Logger,
		}, nil
	case config.SourcePostgres:
		if l.DB == nil || l.DB.Gorm == nil {
			return nil, ErrNoDatabase
		}
		return gormrepository.New(l.DB.Gorm), nil
	case config.SourceCSV:
		return &listing.CSVSource{Path: l.Config.Source.CSVPath}, nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", l.Config.Source.Kind)
	}
}

func (l TableLoader) Load(ctx context.Context) (*listing.Table, error) {
	src, err := l.Source()
	if err != nil {
		return nil, err
	}
	t, err := listing.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("load %s listings: %w", l.Config.Source.Kind, err)
	}
	if l.Logger != nil {
		l.Logger.Info("listing table loaded",
			zap.String("source", l.Config.Source.Kind),
			zap.Int("rows", t.Len()),
			zap.Int("brands", len(t.Brands())),
		)
	}
	return t, nil
}

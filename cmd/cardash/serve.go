package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"cardash/internal/cache"
	"cardash/internal/config"
	cronrunner "cardash/internal/cron"
	"cardash/internal/dashboard"
	"cardash/internal/db"
	"cardash/internal/handler"
	"cardash/internal/listing"
	"cardash/internal/navigation"
	gormrepository "cardash/internal/repository/gorm"
	"cardash/internal/service"

	_ "cardash/docs"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the listing table and serve the dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return serve(cmd.Context(), cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	dbConn, err := openDB(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close(dbConn)

	loader := service.TableLoader{Config: cfg, DB: dbConn, Logger: logger}
	table, err := loader.Load(ctx)
	if err != nil {
		return err
	}

	store, err := newCache(ctx, cfg.Cache, logger)
	if err != nil {
		return err
	}
	nav, closeNav := newNavigator(cfg.Navigation, logger)
	defer closeNav()

	svc := &dashboard.Service{
		Table:     table,
		Cache:     store,
		CacheTTL:  cfg.Cache.TTL,
		Navigator: nav,
		BaseURL:   cfg.Navigation.BaseURL,
		Assets:    os.DirFS(cfg.Server.AssetsDir),
		Logger:    logger,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(handler.RequestLogger(logger))
	engine.Use(handler.CORS())

	health := &handler.HealthHandler{Table: func() *listing.Table { return svc.Table }}
	if dbConn != nil {
		health.DB = dbConn.Gorm
	}
	health.Register(engine)
	dash := &handler.DashboardHandler{
		Service:    svc,
		Logger:     logger,
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		OpenInPage: cfg.Navigation.Launcher == "none",
	}
	dash.Register(engine)
	if dbConn != nil {
		listings := &handler.ListingHandler{
			QueryService: &service.ListingQueryService{Repo: gormrepository.New(dbConn.Gorm)},
			Logger:       logger,
		}
		listings.Register(engine)
	}
	ui := &handler.UIHandler{AssetsDir: cfg.Server.AssetsDir}
	ui.Register(engine)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	cronRunner := cronrunner.New(logger, ctx)
	if sweeper, ok := store.(cache.Sweeper); ok {
		if _, err := cronRunner.Add("cache-sweep", cfg.Cache.SweepSpec, cronrunner.SweepJob(sweeper, logger)); err != nil {
			logger.Warn("cron register cache sweep failed", zap.Error(err))
		}
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr), zap.Int("listings", table.Len()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case runErr = <-errCh:
		logger.Error("server error", zap.Error(runErr))
	}

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	return runErr
}

// newCache returns nil for kind "none"; the dashboard then recomputes every
// figure.
func newCache(ctx context.Context, cfg config.CacheConfig, logger *zap.Logger) (cache.Store, error) {
	switch cfg.Kind {
	case "memory":
		return cache.NewMemoryStore(), nil
	case "redis":
		rs := cache.NewRedisStore(&redis.Options{
			Addr:     cfg.RedisAddr,
			DB:       cfg.RedisDB,
			Password: cfg.RedisPassword,
		}, cfg.KeyPrefix)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := rs.Ping(pingCtx); err != nil {
			_ = rs.Close()
			return nil, err
		}
		logger.Info("figure cache on redis", zap.String("addr", cfg.RedisAddr))
		return rs, nil
	default:
		return nil, nil
	}
}

func newNavigator(cfg config.NavigationConfig, logger *zap.Logger) (navigation.Navigator, func()) {
	switch cfg.Launcher {
	case "system":
		return navigation.SystemLauncher{}, func() {}
	case "chrome":
		l := &navigation.ChromeLauncher{ExecPath: cfg.ChromePath}
		return l, l.Close
	default:
		return &navigation.NopNavigator{Logger: logger}, func() {}
	}
}

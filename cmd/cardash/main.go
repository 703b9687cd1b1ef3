package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cardash/internal/config"
	"cardash/internal/db"
	"cardash/internal/logger"
)

var (
	cfgPath    string
	envOnly    bool
	dotenvPath string

	rootCmd = &cobra.Command{
		Use:           "cardash",
		Short:         "Used-car listing dashboard",
		Long:          "cardash serves an interactive dashboard over car listings and their predicted prices.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	def := os.Getenv("CD_CONFIG")
	if def == "" {
		def = "config/config.yaml"
	}
	envDefault := false
	if raw := os.Getenv("CD_ENV_ONLY"); raw != "" {
		envDefault = strings.EqualFold(raw, "true") || raw == "1"
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", def, "config file")
	rootCmd.PersistentFlags().BoolVar(&envOnly, "env-only", envDefault, "read config from CD_* environment variables only")
	rootCmd.PersistentFlags().StringVar(&dotenvPath, "dotenv", ".env", "dotenv file loaded before config (ignored if missing)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(renderCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the dotenv file, the config and the logger shared by every
// subcommand.
func setup() (config.Config, *zap.Logger, error) {
	if err := config.LoadDotenv(dotenvPath); err != nil {
		return config.Config{}, nil, err
	}
	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

// openDB connects when a dsn is configured or the table lives in postgres.
// It returns nil without a dsn otherwise.
func openDB(ctx context.Context, cfg config.Config, log *zap.Logger) (*db.DB, error) {
	if cfg.DB.DSN == "" && cfg.Source.Kind != config.SourcePostgres {
		return nil, nil
	}
	conn, err := db.Open(cfg.DB)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.Ping(pingCtx, conn); err != nil {
		_ = db.Close(conn)
		return nil, fmt.Errorf("db ping: %w", err)
	}
	if err := db.SetTimezone(conn, cfg.DB.Timezone); err != nil {
		log.Warn("failed to set timezone", zap.Error(err))
	}
	return conn, nil
}

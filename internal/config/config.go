package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Server       ServerConfig       `mapstructure:"server"`
	Log          LogConfig          `mapstructure:"log"`
	DB           DBConfig           `mapstructure:"db"`
	Source       SourceConfig       `mapstructure:"source"`
	FeatureStore FeatureStoreConfig `mapstructure:"feature_store"`
	Cache        CacheConfig        `mapstructure:"cache"`
	Navigation   NavigationConfig   `mapstructure:"navigation"`
	Render       RenderConfig       `mapstructure:"render"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr        string        `mapstructure:"http_addr"`
	AssetsDir       string        `mapstructure:"assets_dir"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level             string   `mapstructure:"level"`
	Encoding          string   `mapstructure:"encoding"`
	Development       bool     `mapstructure:"development"`
	Sampling          bool     `mapstructure:"sampling"`
	DisableCaller     bool     `mapstructure:"disable_caller"`
	DisableStacktrace bool     `mapstructure:"disable_stacktrace"`
	OutputPaths       []string `mapstructure:"output_paths"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
	BatchSize       int           `mapstructure:"batch_size"`
}

// Source kinds for the listing table.
const (
	SourceFeatureStore = "featurestore"
	SourcePostgres     = "postgres"
	SourceCSV          = "csv"
)

type SourceConfig struct {
	Kind    string `mapstructure:"kind"`
	CSVPath string `mapstructure:"csv_path"`
}

type FeatureStoreConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	Project      string        `mapstructure:"project"`
	APIKey       string        `mapstructure:"api_key"`
	FeatureGroup string        `mapstructure:"feature_group"`
	Version      int           `mapstructure:"version"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type CacheConfig struct {
	Kind          string        `mapstructure:"kind"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisDB       int           `mapstructure:"redis_db"`
	RedisPassword string        `mapstructure:"redis_password"`
	KeyPrefix     string        `mapstructure:"key_prefix"`
	TTL           time.Duration `mapstructure:"ttl"`
	SweepSpec     string        `mapstructure:"sweep_spec"`
}

type NavigationConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	Launcher   string `mapstructure:"launcher"`
	ChromePath string `mapstructure:"chrome_path"`
}

type RenderConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// LoadDotenv reads key=value pairs from path into the environment. A missing
// file is not an error; variables already set are kept.
func LoadDotenv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", "127.0.0.1:8050")
	v.SetDefault("server.assets_dir", "assets")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("log.output_paths", []string{"stdout"})
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.batch_size", 500)
	v.SetDefault("source.kind", SourceFeatureStore)
	v.SetDefault("source.csv_path", "data/autoscout_data_with_predictions.csv")
	v.SetDefault("feature_store.base_url", "https://c.app.hopsworks.ai")
	v.SetDefault("feature_store.project", "Cars_project")
	v.SetDefault("feature_store.api_key", "")
	v.SetDefault("feature_store.feature_group", "batch_data_cars")
	v.SetDefault("feature_store.version", 3)
	v.SetDefault("feature_store.timeout", "60s")
	v.SetDefault("cache.kind", "memory")
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.key_prefix", "cardash:")
	v.SetDefault("cache.ttl", "30m")
	v.SetDefault("cache.sweep_spec", "@every 10m")
	v.SetDefault("navigation.base_url", "https://www.autoscout24.nl/")
	v.SetDefault("navigation.launcher", "none")
	v.SetDefault("navigation.chrome_path", "")
	v.SetDefault("render.width", 1000)
	v.SetDefault("render.height", 600)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Source.Kind {
	case SourceFeatureStore, SourcePostgres, SourceCSV:
	default:
		return fmt.Errorf("source.kind %q: want featurestore, postgres or csv", c.Source.Kind)
	}
	switch c.Cache.Kind {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("cache.kind %q: want memory, redis or none", c.Cache.Kind)
	}
	switch c.Navigation.Launcher {
	case "none", "system", "chrome":
	default:
		return fmt.Errorf("navigation.launcher %q: want none, system or chrome", c.Navigation.Launcher)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render size %dx%d must be positive", c.Render.Width, c.Render.Height)
	}
	return nil
}

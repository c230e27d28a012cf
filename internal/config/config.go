package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Places   PlacesConfig   `yaml:"places" mapstructure:"places"`
	BestTime BestTimeConfig `yaml:"besttime" mapstructure:"besttime"`
	Locator  LocatorConfig  `yaml:"locator" mapstructure:"locator"`
	Pipeline PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// PlacesConfig holds Places API credentials.
type PlacesConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// BestTimeConfig holds busyness forecast API credentials.
type BestTimeConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
}

// LocatorConfig configures the POI search waterfall.
type LocatorConfig struct {
	TiersPath string `yaml:"tiers_path" mapstructure:"tiers_path"`
}

// PipelineConfig configures report generation.
type PipelineConfig struct {
	TopN        int     `yaml:"top_n" mapstructure:"top_n"`
	Concurrency int     `yaml:"concurrency" mapstructure:"concurrency"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FIELDSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "fieldscout.db")
	v.SetDefault("besttime.enabled", true)
	v.SetDefault("pipeline.top_n", 10)
	v.SetDefault("pipeline.concurrency", 4)
	v.SetDefault("pipeline.rate_per_sec", 0.5)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the configuration needed for the given command mode.
// Errors are collected so the operator sees every problem at once.
func (c *Config) Validate(mode string) error {
	var problems []string

	check := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}

	check(c.Store.Driver == "sqlite" || c.Store.Driver == "postgres",
		"store.driver must be sqlite or postgres")
	check(c.Store.DatabaseURL != "", "store.database_url is required")
	check(c.Pipeline.Concurrency >= 1 && c.Pipeline.Concurrency <= 32,
		"pipeline.concurrency must be between 1 and 32")
	check(c.Pipeline.RatePerSec > 0, "pipeline.rate_per_sec must be > 0")
	check(c.Pipeline.TopN > 0, "pipeline.top_n must be > 0")

	switch mode {
	case "rank", "areas", "runs":
		// no provider credentials needed
	case "report":
		// Provider keys are optional: a missing key disables that
		// capability for the run instead of failing it.
	case "serve":
		check(c.Server.Port > 0, "server.port must be > 0")
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

// Package config loads the client configuration: a YAML file merged
// with environment overrides (a local .env file is honored via
// godotenv). Precedence is env over file over defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the main configuration struct.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Storage   StorageConfig   `yaml:"storage"`
	Retention RetentionConfig `yaml:"retention"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// APIConfig holds settings for the CMS HTTP API.
type APIConfig struct {
	BaseURL   string  `yaml:"base_url"`
	Timeout   string  `yaml:"timeout"` // e.g. "15s"
	RateRPS   float64 `yaml:"rate_rps"`
	RateBurst int     `yaml:"rate_burst"`
}

// TimeoutDuration parses the request timeout, falling back to 15s on
// bad input.
func (a APIConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(a.Timeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

// StorageConfig holds the local store location.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// RetentionConfig drives the offline cache pruning runner.
type RetentionConfig struct {
	Enabled bool   `yaml:"enabled"`
	Cron    string `yaml:"cron"`    // e.g. "0 * * * *"
	MaxAge  string `yaml:"max_age"` // e.g. "168h"
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// MetricsConfig optionally exposes Prometheus metrics for
// long-running invocations.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // empty disables the listener
}

// Default returns the built-in configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		API: APIConfig{
			BaseURL:   "http://localhost:5000/api",
			Timeout:   "15s",
			RateRPS:   10,
			RateBurst: 20,
		},
		Storage: StorageConfig{
			DBPath: filepath.Join(home, ".inkpress", "db"),
		},
		Retention: RetentionConfig{
			Enabled: true,
			Cron:    "0 * * * *",
			MaxAge:  "168h",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the YAML file at path (when present) over the defaults
// and applies environment overrides on top. A missing file is not an
// error; a malformed one is.
func Load(path string) (*Config, error) {
	// .env is best-effort, matching local development usage
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("INKPRESS_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("INKPRESS_API_TIMEOUT"); v != "" {
		if _, err := time.ParseDuration(v); err == nil {
			cfg.API.Timeout = v
		}
	}
	if v := os.Getenv("INKPRESS_RATE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.API.RateRPS = f
		}
	}
	if v := os.Getenv("INKPRESS_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.API.RateBurst = n
		}
	}
	if v := os.Getenv("INKPRESS_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("INKPRESS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("INKPRESS_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("INKPRESS_CACHE_MAX_AGE"); v != "" {
		cfg.Retention.MaxAge = v
	}
}

// MaxAgeDuration parses the retention max age, falling back to one
// week on bad input.
func (r RetentionConfig) MaxAgeDuration() time.Duration {
	d, err := time.ParseDuration(r.MaxAge)
	if err != nil || d <= 0 {
		return 168 * time.Hour
	}
	return d
}

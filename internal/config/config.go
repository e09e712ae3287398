// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Store drivers.
const (
	DriverJSON     = "json"
	DriverPostgres = "postgres"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Store   StoreConfig
	Reports ReportsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
	// StaticDir, when set, is served at / for the bundled frontend.
	StaticDir string
}

// IsProduction reports whether the service runs in production mode.
func (s ServerConfig) IsProduction() bool {
	return s.Env == "production"
}

// LogConfig holds logger options.
type LogConfig struct {
	Level string
}

// StoreConfig selects and configures the record store.
type StoreConfig struct {
	Driver      string
	DataDir     string
	FailSoft    bool
	DatabaseURL string
}

// ReportsConfig holds report defaults.
type ReportsConfig struct {
	LowStockThreshold decimal.Decimal
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// A missing .env is fine when configuration comes from the environment.
		_ = godotenv.Load()
	}

	failSoft, err := strconv.ParseBool(getenvWithDefault("STORE_FAIL_SOFT", "false"))
	if err != nil {
		return nil, fmt.Errorf("STORE_FAIL_SOFT: %w", err)
	}

	threshold, err := decimal.NewFromString(getenvWithDefault("LOW_STOCK_THRESHOLD", "10"))
	if err != nil {
		return nil, fmt.Errorf("LOW_STOCK_THRESHOLD: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getenvWithDefault("APP_PORT", "3000"),
			Env:            getenvWithDefault("APP_ENV", "development"),
			AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
			StaticDir:      os.Getenv("STATIC_DIR"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			Driver:      strings.ToLower(getenvWithDefault("STORE_DRIVER", DriverJSON)),
			DataDir:     getenvWithDefault("DATA_DIR", "./data"),
			FailSoft:    failSoft,
			DatabaseURL: os.Getenv("DATABASE_URL"),
		},
		Reports: ReportsConfig{
			LowStockThreshold: threshold,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Store.Driver {
	case DriverJSON:
		if c.Store.DataDir == "" {
			return errors.New("DATA_DIR must not be empty")
		}
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			return errors.New("DATABASE_URL must be provided when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want %s or %s)", c.Store.Driver, DriverJSON, DriverPostgres)
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

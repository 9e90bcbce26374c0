package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/01moynul/healthsync-golang/internal/cache"
	"github.com/01moynul/healthsync-golang/internal/database"
	"github.com/01moynul/healthsync-golang/internal/warehouse"
)

// Config is the service configuration, read from the environment.
type Config struct {
	WarehouseDriver string
	WarehouseDSN    string
	WarehouseTable  string
	CacheTTL        time.Duration
	FetchTimeout    time.Duration
	Port            string
	CORSAllowOrigin string
	LogLevel        string
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load env file: %w", err)
		}
		slog.Debug("no .env file found, relying on process environment")
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables alone.
func FromEnv() (Config, error) {
	cfg := Config{
		WarehouseDriver: getenv("WAREHOUSE_DRIVER", database.DefaultDriver),
		WarehouseDSN:    os.Getenv("WAREHOUSE_DSN"),
		WarehouseTable:  getenv("WAREHOUSE_TABLE", warehouse.DefaultTable),
		Port:            getenv("PORT", "8080"),
		CORSAllowOrigin: getenv("CORS_ALLOW_ORIGIN", "http://localhost:5173"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.CacheTTL, err = durationEnv("CACHE_TTL", cache.DefaultTTL); err != nil {
		return Config{}, err
	}
	if cfg.FetchTimeout, err = durationEnv("FETCH_TIMEOUT", warehouse.DefaultFetchTimeout); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	if c.WarehouseDSN == "" {
		return errors.New("config: WAREHOUSE_DSN is not set")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive, got %s", key, raw)
	}
	return d, nil
}

// Package config loads client configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultBaseURL is the production API endpoint, fixed at build time. The
// environment override exists for staging and tests.
const DefaultBaseURL = "https://api.cityhop.app"

// Storage backend names accepted in Config.Storage.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

// Config holds every tunable of the client. All fields come from CITYHOP_*
// environment variables with sensible defaults.
type Config struct {
	BaseURL string        `env:"CITYHOP_API_URL"`
	Timeout time.Duration `env:"CITYHOP_TIMEOUT" envDefault:"30s"`

	// Storage selects the session keystore backend: file, sqlite or redis.
	Storage   string `env:"CITYHOP_STORAGE" envDefault:"file"`
	StorePath string `env:"CITYHOP_STORE_PATH"`
	// StorePassphrase, when set, seals stored values with an encryption
	// layer derived from it.
	StorePassphrase string `env:"CITYHOP_STORE_PASSPHRASE"`
	RedisAddr       string `env:"CITYHOP_REDIS_ADDR" envDefault:"localhost:6379"`

	Debug   bool   `env:"CITYHOP_DEBUG"`
	LogFile string `env:"CITYHOP_LOG_FILE"`
}

// Load parses the environment and fills in derived defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	switch cfg.Storage {
	case StorageFile, StorageSQLite, StorageRedis:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}

	if cfg.StorePath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		name := "store.json"
		if cfg.Storage == StorageSQLite {
			name = "store.db"
		}
		cfg.StorePath = filepath.Join(dir, "cityhop", name)
	}

	return &cfg, nil
}

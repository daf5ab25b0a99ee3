package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/SscSPs/budget_ledger/internal/core/money"
)

// Storage drivers.
const (
	StorageDriverPgsql  = "pgsql"
	StorageDriverMemory = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	ReplicaDatabaseURL string // optional; reporting reads go here when set
	Port               string
	IsProduction       bool
	EnableDBCheck      bool
	RunMigrations      bool
	MigrationsPath     string
	StorageDriver      string
	DefaultCurrency    string
	AggregateWorkers   int
	AggregateQueueSize int
	RateLimit          string // ulule formatted, e.g. "300-M"
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PGSQL_REPLICA_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("STORAGE_DRIVER", StorageDriverPgsql)
	v.SetDefault("DEFAULT_CURRENCY", "USD")
	v.SetDefault("AGGREGATE_WORKERS", 2)
	v.SetDefault("AGGREGATE_QUEUE_SIZE", 256)
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		ReplicaDatabaseURL: v.GetString("PGSQL_REPLICA_URL"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:      v.GetBool("RUN_MIGRATIONS"),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		StorageDriver:      strings.ToLower(v.GetString("STORAGE_DRIVER")),
		DefaultCurrency:    money.NormalizeCurrency(v.GetString("DEFAULT_CURRENCY")),
		AggregateWorkers:   v.GetInt("AGGREGATE_WORKERS"),
		AggregateQueueSize: v.GetInt("AGGREGATE_QUEUE_SIZE"),
		RateLimit:          v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StorageDriverPgsql:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_DRIVER is %s", StorageDriverPgsql)
		}
	case StorageDriverMemory:
		log.Println("Warning: using in-memory storage. Data is lost on restart.")
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if err := money.ValidateCurrency(cfg.DefaultCurrency); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_CURRENCY: %w", err)
	}

	if cfg.AggregateWorkers < 1 {
		log.Printf("Warning: AGGREGATE_WORKERS must be positive, got %d. Defaulting to 1.\n", cfg.AggregateWorkers)
		cfg.AggregateWorkers = 1
	}
	if cfg.AggregateQueueSize < 1 {
		cfg.AggregateQueueSize = 256
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

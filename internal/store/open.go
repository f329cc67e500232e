package store

import (
	"context"
	"fmt"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Config selects and configures a backend. Secrets are resolved by the caller.
type Config struct {
	Backend         string `mapstructure:"backend"`
	Dir             string `mapstructure:"dir"`
	Driver          string `mapstructure:"driver"`
	DatabaseURL     string `mapstructure:"database-url"`
	DatabaseURLFile string `mapstructure:"database-url-file"`
	RedisURL        string `mapstructure:"redis-url"`
	MaxRetries      int    `mapstructure:"max-retries"`
}

// Open builds the configured backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendFile:
		return NewFileStore(cfg.Dir)
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("store backend %q needs a database url", cfg.Backend)
		}
		return OpenSQL(ctx, cfg.Driver, cfg.DatabaseURL)
	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("store backend %q needs a redis url", cfg.Backend)
		}
		return OpenRedis(ctx, cfg.RedisURL)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

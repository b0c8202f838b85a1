package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// AuthConfig carries the two independent token secrets and lifetimes. Both
// secrets are required: a missing one is a fatal startup condition, never a
// per-request error.
type AuthConfig struct {
	AccessSecret  string        `env:"ACCESS_TOKEN_SECRET,  required"`
	RefreshSecret string        `env:"REFRESH_TOKEN_SECRET, required"`
	AccessTTL     time.Duration `env:"ACCESS_TOKEN_TTL,     default=60m"`
	RefreshTTL    time.Duration `env:"REFRESH_TOKEN_TTL,    default=168h"`
	BcryptCost    int           `env:"BCRYPT_COST,          default=10"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=rental_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Auth.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// validate rejects secret configurations that would collapse the two token
// classes into one.
func (a AuthConfig) validate() error {
	if a.AccessSecret == a.RefreshSecret {
		return errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	return nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

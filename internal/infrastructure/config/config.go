package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string `env:"PORT,           default=8080"`
	Env           string `env:"ENV,            default=development"`
	SessionSecret string `env:"SESSION_SECRET"`
	LogLevel      string `env:"LOG_LEVEL,      default=info"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	MaxAttempts     int           `env:"AUTH_MAX_ATTEMPTS,     default=5"`
	LockoutMinutes  int           `env:"AUTH_LOCKOUT_MINUTES,  default=15"`
	WarnAfter       int           `env:"AUTH_WARN_AFTER,       default=2"`
	SessionTTL      time.Duration `env:"AUTH_SESSION_TTL,      default=24h"`
	SettingsRefresh time.Duration `env:"AUTH_SETTINGS_REFRESH, default=30s"`
	AuditWorkers    int           `env:"AUTH_AUDIT_WORKERS,    default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=aid_registry"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

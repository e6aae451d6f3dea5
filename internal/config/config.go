// internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all process configuration. REDIS_ADDR and DATABASE_URL are
// optional; leaving them unset disables the action historian and the result
// archive respectively.
type Config struct {
	Addr           string        `env:"ADDR" envDefault:":8080"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"debug"`
	TokenExpire    time.Duration `env:"TOKEN_EXPIRE_TIME" envDefault:"72h"`
	RedisAddr      string        `env:"REDIS_ADDR"`
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`
	HistorianQueue string        `env:"HISTORIAN_QUEUE_NAME" envDefault:"cameo_actions"`
	DatabaseURL    string        `env:"DATABASE_URL"`
}

// Parse loads Config from environment variables.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

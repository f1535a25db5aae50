// Package config загружает конфигурацию сервера из окружения (и .env).
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config конфигурация сервера filmvault
type Config struct {
	Addr                   string        `env:"ADDR,default=:8080"`
	DBPath                 string        `env:"DB_PATH,default=filmvault.db"`
	JWTSecret              string        `env:"JWT_SECRET,required"`
	TMDBAPIKey             string        `env:"TMDB_API_KEY"`
	TMDBBaseURL            string        `env:"TMDB_BASE_URL,default=https://api.themoviedb.org/3"`
	RedisAddr              string        `env:"REDIS_ADDR"`
	RedisPassword          string        `env:"REDIS_PASSWORD"`
	OTLPEndpoint           string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	LogLevel               string        `env:"LOG_LEVEL,default=info"`
	AllowedOrigins         []string      `env:"CORS_ALLOWED_ORIGINS,default=http://localhost:3000"`
	SessionTTL             time.Duration `env:"SESSION_TTL,default=720h"`
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL,default=1h"`
	RateLimitRPS           float64       `env:"RATE_LIMIT_RPS,default=10"`
	RateLimitBurst         int           `env:"RATE_LIMIT_BURST,default=20"`
	RedisDB                int           `env:"REDIS_DB,default=0"`
	SeedDemoUser           bool          `env:"SEED_DEMO_USER,default=false"`
}

// Load читает .env (если есть) и переменные окружения
func Load(ctx context.Context) (*Config, error) {
	// .env не обязателен: в контейнере все приходит из окружения
	_ = godotenv.Load()

	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет значения, которые envconfig проверить не может
func (c *Config) Validate() error {
	var errs []error

	if len(c.JWTSecret) < 16 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 16 bytes"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.SessionCleanupInterval <= 0 {
		errs = append(errs, errors.New("SESSION_CLEANUP_INTERVAL must be positive"))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// SlogLevel переводит LOG_LEVEL в slog.Level
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}

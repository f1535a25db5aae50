// Package cache кеш ответов прокси каталога.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss ключ отсутствует в кеше
var ErrMiss = errors.New("cache miss")

// Cache хранилище сериализованных ответов с TTL
type Cache interface {
	// Get возвращает значение или ErrMiss
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

var (
	_ Cache = (*Redis)(nil)
	_ Cache = Noop{}
)

// RedisConfig параметры подключения к Redis
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Redis кеш поверх go-redis
type Redis struct {
	client *redis.Client
}

// NewRedis подключается к Redis и проверяет соединение
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Redis{client: client}, nil
}

// Get читает значение по ключу
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("failed to get cache key: %w", err)
	}
	return value, nil
}

// Set записывает значение с TTL
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache key: %w", err)
	}
	return nil
}

// Ping проверяет соединение (health check)
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close закрывает соединение
func (r *Redis) Close() error {
	return r.client.Close()
}

// Noop кеш-заглушка, когда Redis не настроен: всегда промах
type Noop struct{}

// Get всегда возвращает ErrMiss
func (Noop) Get(context.Context, string) ([]byte, error) {
	return nil, ErrMiss
}

// Set ничего не делает
func (Noop) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

// Package app связывает зависимости сервера и управляет его жизненным циклом.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/iudanet/filmvault/internal/catalog/tmdb"
	"github.com/iudanet/filmvault/internal/crypto"
	"github.com/iudanet/filmvault/internal/server/cache"
	"github.com/iudanet/filmvault/internal/server/config"
	"github.com/iudanet/filmvault/internal/server/handlers"
	"github.com/iudanet/filmvault/internal/server/janitor"
	"github.com/iudanet/filmvault/internal/server/metrics"
	"github.com/iudanet/filmvault/internal/server/middleware"
	"github.com/iudanet/filmvault/internal/server/seed"
	"github.com/iudanet/filmvault/internal/server/storage/sqlite"
	"github.com/iudanet/filmvault/internal/server/telemetry"
)

const shutdownTimeout = 15 * time.Second

// Run запускает HTTP сервер и блокируется до отмены ctx
// После отмены сервер завершает активные запросы и освобождает ресурсы
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, version string) error {
	// 1. Хранилище пользователей и сессий
	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()
	logger.Info("storage opened", slog.String("path", cfg.DBPath))

	if cfg.SeedDemoUser {
		if _, err := seed.DemoUser(ctx, store, crypto.DefaultCost, logger); err != nil {
			return fmt.Errorf("failed to seed demo user: %w", err)
		}
	}

	// 2. Трейсинг
	shutdownTracing, err := telemetry.Init(ctx, logger, "filmvault-api", version, cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("failed to init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("failed to shutdown tracing", slog.Any("error", err))
		}
	}()

	// 3. Кеш каталога
	var catalogCache cache.Cache = cache.Noop{}
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedis(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return err
		}
		defer func() { _ = redisCache.Close() }()

		catalogCache = redisCache
		logger.Info("catalog cache enabled", slog.String("redis_addr", cfg.RedisAddr))
	}

	// 4. Метрики
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	// 5. Каталог
	if cfg.TMDBAPIKey == "" {
		logger.Warn("TMDB_API_KEY is not set, catalog proxy requests will be rejected upstream")
	}
	catalogClient := tmdb.NewClient(cfg.TMDBBaseURL, cfg.TMDBAPIKey,
		tmdb.WithLogger(logger),
		tmdb.WithHTTPClient(&http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}),
	)

	// 6. Handlers и роутер
	jwtConfig := handlers.JWTConfig{
		Secret:     []byte(cfg.JWTSecret),
		SessionTTL: cfg.SessionTTL,
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)
	defer rateLimiter.Stop()

	router := NewRouter(&RouterDeps{
		Logger:         logger,
		Auth:           handlers.NewAuthHandler(logger, store, store, jwtConfig),
		Health:         handlers.NewHealthHandler(logger, store, version),
		Catalog:        handlers.NewCatalogHandler(logger, catalogClient, catalogCache, collector),
		RateLimiter:    rateLimiter,
		HTTPMetrics:    collector,
		MetricsHandler: metrics.Handler(registry),
		AllowedOrigins: cfg.AllowedOrigins,
		JWTConfig:      jwtConfig,
	})

	// 7. Фоновая очистка истекших сессий
	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go janitor.New(store, cfg.SessionCleanupInterval, logger).Run(janitorCtx)

	// 8. HTTP сервер
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("API server starting", slog.String("addr", server.Addr), slog.String("version", version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server listen error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down API server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("API server stopped")
	return nil
}

package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/iudanet/filmvault/internal/server/handlers"
	"github.com/iudanet/filmvault/internal/server/metrics"
	"github.com/iudanet/filmvault/internal/server/middleware"
)

// RouterDeps зависимости HTTP роутера
type RouterDeps struct {
	Logger         *slog.Logger
	Auth           *handlers.AuthHandler
	Health         *handlers.HealthHandler
	Catalog        *handlers.CatalogHandler
	RateLimiter    *middleware.RateLimiter
	HTTPMetrics    metrics.HTTPRecorder
	MetricsHandler http.Handler
	AllowedOrigins []string
	JWTConfig      handlers.JWTConfig
}

// NewRouter собирает маршруты API и цепочку middleware
//
// Порядок: Recovery → Logging → Metrics → CORS → (RateLimit → Auth) → handler
func NewRouter(d *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RecoveryMiddleware(d.Logger))
	r.Use(middleware.LoggingWithSkip(d.Logger, []string{"/api/health", "/metrics"}))
	if d.HTTPMetrics != nil {
		r.Use(middleware.MetricsMiddleware(d.HTTPMetrics))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/api/health", d.Health.Health)
	if d.MetricsHandler != nil {
		r.Handle("/metrics", d.MetricsHandler)
	}

	r.Route("/api/auth", func(r chi.Router) {
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.Middleware())
		}

		r.Post("/register", d.Auth.Register)
		r.Post("/login", d.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(d.Logger, d.JWTConfig))
			r.Get("/session", d.Auth.Session)
			r.Post("/logout", d.Auth.Logout)
		})
	})

	// Пути повторяют TMDB API, чтобы клиент каталога работал с прокси без изменений
	r.Route("/api/catalog", func(r chi.Router) {
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.Middleware())
		}

		r.Get("/movie/popular", d.Catalog.PopularMovies)
		r.Get("/movie/{id}", d.Catalog.MovieDetails)
		r.Get("/search/movie", d.Catalog.SearchMovies)
		r.Get("/tv/popular", d.Catalog.PopularTVShows)
		r.Get("/tv/{id}", d.Catalog.TVShowDetails)
	})

	return otelhttp.NewHandler(r, "filmvault-api")
}

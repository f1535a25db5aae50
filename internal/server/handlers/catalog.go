package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/singleflight"

	"github.com/iudanet/filmvault/internal/catalog/tmdb"
	"github.com/iudanet/filmvault/internal/server/cache"
	"github.com/iudanet/filmvault/internal/server/metrics"
)

const (
	listCacheTTL    = 5 * time.Minute
	detailCacheTTL  = 30 * time.Minute
	upstreamTimeout = 15 * time.Second
)

// CatalogHandler прокси каталога: ключ TMDB остается на сервере,
// ответы кешируются, одинаковые промахи схлопываются в один запрос
type CatalogHandler struct {
	logger  *slog.Logger
	source  tmdb.Catalog
	cache   cache.Cache
	metrics metrics.CatalogRecorder
	group   singleflight.Group
}

// NewCatalogHandler создает handler прокси каталога
func NewCatalogHandler(logger *slog.Logger, source tmdb.Catalog, c cache.Cache, m metrics.CatalogRecorder) *CatalogHandler {
	if c == nil {
		c = cache.Noop{}
	}
	if m == nil {
		m = metrics.Nop{}
	}
	return &CatalogHandler{
		logger:  logger,
		source:  source,
		cache:   c,
		metrics: m,
	}
}

// PopularMovies обрабатывает GET /api/catalog/movie/popular?page=N
func (h *CatalogHandler) PopularMovies(w http.ResponseWriter, r *http.Request) {
	page, ok := h.pageParam(w, r)
	if !ok {
		return
	}

	key := cacheKey("movie/popular", url.Values{"page": {strconv.Itoa(page)}})
	h.serve(w, r, "movie_popular", key, listCacheTTL, func(ctx context.Context) (interface{}, error) {
		return h.source.GetPopularMovies(ctx, page)
	})
}

// SearchMovies обрабатывает GET /api/catalog/search/movie?query=Q&page=N
func (h *CatalogHandler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	page, ok := h.pageParam(w, r)
	if !ok {
		return
	}
	query := r.URL.Query().Get("query")

	key := cacheKey("search/movie", url.Values{"page": {strconv.Itoa(page)}, "query": {query}})
	h.serve(w, r, "search_movie", key, listCacheTTL, func(ctx context.Context) (interface{}, error) {
		return h.source.SearchMovies(ctx, query, page)
	})
}

// MovieDetails обрабатывает GET /api/catalog/movie/{id}
func (h *CatalogHandler) MovieDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	key := cacheKey("movie/"+strconv.Itoa(id), nil)
	h.serve(w, r, "movie_details", key, detailCacheTTL, func(ctx context.Context) (interface{}, error) {
		return h.source.GetMovieDetails(ctx, id)
	})
}

// PopularTVShows обрабатывает GET /api/catalog/tv/popular?page=N
func (h *CatalogHandler) PopularTVShows(w http.ResponseWriter, r *http.Request) {
	page, ok := h.pageParam(w, r)
	if !ok {
		return
	}

	key := cacheKey("tv/popular", url.Values{"page": {strconv.Itoa(page)}})
	h.serve(w, r, "tv_popular", key, listCacheTTL, func(ctx context.Context) (interface{}, error) {
		return h.source.GetPopularTVShows(ctx, page)
	})
}

// TVShowDetails обрабатывает GET /api/catalog/tv/{id}
func (h *CatalogHandler) TVShowDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	key := cacheKey("tv/"+strconv.Itoa(id), nil)
	h.serve(w, r, "tv_details", key, detailCacheTTL, func(ctx context.Context) (interface{}, error) {
		return h.source.GetTVShowDetails(ctx, id)
	})
}

// serve отдает ответ из кеша или запрашивает каталог и кладет результат в кеш
func (h *CatalogHandler) serve(w http.ResponseWriter, r *http.Request, endpoint, key string, ttl time.Duration, fetch func(context.Context) (interface{}, error)) {
	ctx := r.Context()

	body, err := h.cache.Get(ctx, key)
	if err == nil {
		h.metrics.RecordCacheHit(endpoint)
		sendRawJSON(h.logger, w, body, http.StatusOK)
		return
	}
	if !errors.Is(err, cache.ErrMiss) {
		// Кеш недоступен - работаем напрямую с каталогом
		h.logger.WarnContext(ctx, "catalog cache read failed", slog.String("key", key), slog.Any("error", err))
	}
	h.metrics.RecordCacheMiss(endpoint)

	result, err, shared := h.group.Do(key, func() (interface{}, error) {
		// Запрос общий для всех ожидающих, поэтому не привязан к отмене первого клиента
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), upstreamTimeout)
		defer cancel()

		start := time.Now()
		data, err := fetch(fetchCtx)
		if err != nil {
			h.metrics.RecordUpstream(endpoint, metrics.OutcomeError, time.Since(start))
			return nil, err
		}
		h.metrics.RecordUpstream(endpoint, metrics.OutcomeSuccess, time.Since(start))

		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode catalog response: %w", err)
		}

		if err := h.cache.Set(fetchCtx, key, encoded, ttl); err != nil {
			h.logger.WarnContext(ctx, "catalog cache write failed", slog.String("key", key), slog.Any("error", err))
		}

		return encoded, nil
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "catalog upstream failed",
			slog.String("endpoint", endpoint),
			slog.Bool("shared", shared),
			slog.Any("error", err))
		sendError(h.logger, w, "Failed to fetch catalog data", http.StatusBadGateway)
		return
	}

	sendRawJSON(h.logger, w, result.([]byte), http.StatusOK)
}

// pageParam читает ?page=; отсутствие означает 1, нечисловое значение - 400
func (h *CatalogHandler) pageParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, true
	}

	page, err := strconv.Atoi(raw)
	if err != nil {
		sendError(h.logger, w, "Invalid page", http.StatusBadRequest)
		return 0, false
	}

	return tmdb.NormalizePage(page), true
}

// idParam читает {id} из пути; допускаются только положительные целые
func (h *CatalogHandler) idParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		sendError(h.logger, w, "Invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// cacheKey ключ вида catalog:<path>:<query>; url.Values.Encode сортирует параметры
func cacheKey(path string, query url.Values) string {
	return "catalog:" + path + ":" + query.Encode()
}

// Package tmdb клиент каталога фильмов и сериалов (The Movie Database API v3).
// Тот же клиент работает и с прокси каталога filmvault, который повторяет пути TMDB.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iudanet/filmvault/internal/models"
)

// DefaultBaseURL адрес TMDB API v3
const DefaultBaseURL = "https://api.themoviedb.org/3"

// Catalog операции каталога, которые используют клиент и прокси
type Catalog interface {
	GetPopularMovies(ctx context.Context, page int) (*models.MoviePage, error)
	SearchMovies(ctx context.Context, query string, page int) (*models.MoviePage, error)
	GetMovieDetails(ctx context.Context, id int) (*models.MovieDetails, error)
	GetPopularTVShows(ctx context.Context, page int) (*models.TVShowPage, error)
	GetTVShowDetails(ctx context.Context, id int) (*models.TVShowDetails, error)
}

var _ Catalog = (*Client)(nil)

// Client HTTP клиент каталога
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	apiKey     string
}

// Option настраивает Client
type Option func(*Client)

// WithHTTPClient подменяет http.Client (таймауты, транспорт с трейсингом)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger задает логгер
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient создает клиент каталога
// apiKey может быть пустым, если baseURL указывает на прокси filmvault
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetPopularMovies получает страницу популярных фильмов
func (c *Client) GetPopularMovies(ctx context.Context, page int) (*models.MoviePage, error) {
	var result models.MoviePage
	if err := c.get(ctx, "GetPopularMovies", "/movie/popular", pageQuery(page), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchMovies ищет фильмы по названию
// Пустой запрос возвращает пустую страницу без обращения к сети
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*models.MoviePage, error) {
	if strings.TrimSpace(query) == "" {
		return &models.MoviePage{Page: 1, Results: []models.Movie{}}, nil
	}

	params := pageQuery(page)
	params.Set("query", query)

	var result models.MoviePage
	if err := c.get(ctx, "SearchMovies", "/search/movie", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetMovieDetails получает полную карточку фильма
func (c *Client) GetMovieDetails(ctx context.Context, id int) (*models.MovieDetails, error) {
	var result models.MovieDetails
	if err := c.get(ctx, "GetMovieDetails", "/movie/"+strconv.Itoa(id), url.Values{}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetPopularTVShows получает страницу популярных сериалов
func (c *Client) GetPopularTVShows(ctx context.Context, page int) (*models.TVShowPage, error) {
	var result models.TVShowPage
	if err := c.get(ctx, "GetPopularTVShows", "/tv/popular", pageQuery(page), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTVShowDetails получает полную карточку сериала
func (c *Client) GetTVShowDetails(ctx context.Context, id int) (*models.TVShowDetails, error) {
	var result models.TVShowDetails
	if err := c.get(ctx, "GetTVShowDetails", "/tv/"+strconv.Itoa(id), url.Values{}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// NormalizePage приводит номер страницы к >= 1
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func pageQuery(page int) url.Values {
	return url.Values{"page": []string{strconv.Itoa(NormalizePage(page))}}
}

// get выполняет GET запрос и декодирует JSON ответ в result
func (c *Client) get(ctx context.Context, op, path string, params url.Values, result interface{}) error {
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}

	endpoint := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	c.logger.DebugContext(ctx, "catalog request", slog.String("op", op), slog.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Тело ошибки TMDB не нужно, но дочитываем для переиспользования соединения
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		c.logger.WarnContext(ctx, "catalog request failed",
			slog.String("op", op),
			slog.Int("status", resp.StatusCode))
		return &FetchError{Op: op, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrParse, op, err)
	}

	return nil
}

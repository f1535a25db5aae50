// Package cli командный интерфейс клиента filmvault.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/iudanet/filmvault/internal/catalog/tmdb"
	"github.com/iudanet/filmvault/internal/client/api"
	"github.com/iudanet/filmvault/internal/client/favorites"
	"github.com/iudanet/filmvault/internal/client/iocli"
	"github.com/iudanet/filmvault/internal/client/session"
	"github.com/iudanet/filmvault/internal/client/storage/boltdb"
	"github.com/iudanet/filmvault/internal/client/suggest"
	"github.com/iudanet/filmvault/internal/client/theme"
	"github.com/iudanet/filmvault/internal/models"
)

// errNotAuthenticated возвращается командами, которым нужна сессия
var errNotAuthenticated = errors.New("not authenticated. Please run 'filmvault login' first")

// SessionService операции сессии, которые использует CLI
type SessionService interface {
	Init(ctx context.Context) error
	Status() session.Status
	CurrentUser() *models.UserInfo
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, name, email, password string) error
	Logout(ctx context.Context) error
}

// FavoritesService избранное текущего пользователя
type FavoritesService interface {
	Add(ctx context.Context, entry models.FavoriteEntry) error
	Remove(ctx context.Context, key string) error
	Contains(key string) bool
	List() []models.FavoriteEntry
}

// ThemeService выбранная тема
type ThemeService interface {
	Get(ctx context.Context) theme.Theme
	Set(ctx context.Context, t theme.Theme) error
	Toggle(ctx context.Context) (theme.Theme, error)
}

// Options глобальные флаги клиента
type Options struct {
	ServerURL  string
	DBPath     string
	CatalogURL string
	TMDBAPIKey string
	Theme      string
	Verbose    bool
}

// Cli состояние одного запуска клиента
type Cli struct {
	io          iocli.IO
	logger      *slog.Logger
	session     SessionService
	catalog     tmdb.Catalog
	favorites   FavoritesService
	theme       ThemeService
	closeFn     func() error
	initErr     error
	suggestOpts []suggest.Option
}

// open создает зависимости по глобальным флагам и восстанавливает сессию
func (c *Cli) open(ctx context.Context, opts Options) error {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	c.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	store, err := boltdb.New(ctx, opts.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	c.closeFn = store.Close

	manager := session.NewManager(api.NewClient(opts.ServerURL), store, c.logger)
	favs := favorites.New(store, c.logger)
	manager.Subscribe(favs.OnSessionChange)

	c.session = manager
	c.favorites = favs
	c.theme = theme.NewService(store, opts.Theme, c.logger)
	c.catalog = newCatalog(opts, c.logger)

	// Недоступный сервер не мешает просмотру каталога
	c.initErr = manager.Init(ctx)
	if c.initErr != nil {
		c.logger.Warn("session check failed", slog.Any("error", c.initErr))
	}

	return nil
}

// newCatalog выбирает источник каталога: напрямую TMDB при заданном ключе, иначе прокси сервера
func newCatalog(opts Options, logger *slog.Logger) tmdb.Catalog {
	if opts.TMDBAPIKey != "" {
		return tmdb.NewClient(opts.CatalogURL, opts.TMDBAPIKey, tmdb.WithLogger(logger))
	}

	baseURL := opts.CatalogURL
	if baseURL == "" {
		baseURL = strings.TrimSuffix(opts.ServerURL, "/") + "/api/catalog"
	}
	return tmdb.NewClient(baseURL, "", tmdb.WithLogger(logger))
}

// Close освобождает локальное хранилище
func (c *Cli) Close() error {
	if c.closeFn == nil {
		return nil
	}
	err := c.closeFn()
	c.closeFn = nil
	return err
}

func (c *Cli) authenticated() bool {
	return c.session.Status() == session.StatusAuthenticated
}

func (c *Cli) requireSession() error {
	if !c.authenticated() {
		return errNotAuthenticated
	}
	return nil
}

// favoriteMark отмечает элементы избранного в списках
func (c *Cli) favoriteMark(mediaType models.MediaType, id int) string {
	if c.favorites.Contains(models.FavoriteKey(mediaType, id)) {
		return "★"
	}
	return " "
}

// catalogFailed показывает ошибку каталога вместо результата
func (c *Cli) catalogFailed(what string, err error) {
	c.logger.Warn("catalog request failed", slog.String("what", what), slog.Any("error", err))
	c.io.Printf("⚠️  Could not load %s. Please try again later.\n", what)
	var fe *tmdb.FetchError
	if errors.As(err, &fe) && fe.StatusCode == http.StatusNotFound {
		c.io.Println("The item was not found.")
	}
}

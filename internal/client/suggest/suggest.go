// Package suggest реализует подсказки поиска с задержкой (debounce) ввода.
//
// Состояния: Idle → Debouncing → Fetching → Displaying | Empty | Error.
// Каждый Update и Dismiss увеличивает поколение; ответ устаревшего поколения
// отбрасывается, поэтому побеждает последний запрошенный текст.
package suggest

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/iudanet/filmvault/internal/models"
)

const (
	// DefaultDebounce задержка между последним вводом и запросом
	DefaultDebounce = 300 * time.Millisecond
	// MinQueryLength минимальная длина запроса в символах
	MinQueryLength = 2
	// MaxSuggestions сколько подсказок показывать
	MaxSuggestions = 5

	fetchTimeout = 10 * time.Second
)

// State состояние подсказок
type State string

const (
	StateIdle       State = "idle"
	StateDebouncing State = "debouncing"
	StateFetching   State = "fetching"
	StateDisplaying State = "displaying"
	StateEmpty      State = "empty"
	StateError      State = "error"
)

// Searcher поиск фильмов; реализуется tmdb.Client
type Searcher interface {
	SearchMovies(ctx context.Context, query string, page int) (*models.MoviePage, error)
}

// Snapshot состояние, которое получает наблюдатель
type Snapshot struct {
	Err         error
	State       State
	Query       string
	Suggestions []models.Movie
}

// Observer получает Snapshot при каждом переходе
// Вызывается синхронно и не должен вызывать методы Controller
type Observer func(Snapshot)

// Option настраивает Controller
type Option func(*Controller)

// WithDebounce задает задержку перед запросом
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) {
		c.debounce = d
	}
}

// Controller машина состояний подсказок
type Controller struct {
	searcher  Searcher
	logger    *slog.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	timer     *time.Timer
	observers []Observer
	snapshot  Snapshot
	debounce  time.Duration
	gen       uint64
	closed    bool
	mu        sync.Mutex
	// notifyMu упорядочивает переходы вместе с уведомлениями
	notifyMu sync.Mutex
}

// New создает Controller в состоянии Idle
func New(searcher Searcher, logger *slog.Logger, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())

	c := &Controller{
		searcher: searcher,
		logger:   logger,
		debounce: DefaultDebounce,
		ctx:      ctx,
		cancel:   cancel,
		snapshot: Snapshot{State: StateIdle},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe добавляет наблюдателя
func (c *Controller) Subscribe(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

// Snapshot возвращает текущее состояние
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot.clone()
}

// Update обрабатывает новый текст поля поиска
func (c *Controller) Update(query string) {
	q := strings.TrimSpace(query)

	c.restart(func(gen uint64) Snapshot {
		if utf8.RuneCountInString(q) < MinQueryLength {
			return Snapshot{State: StateIdle, Query: q}
		}

		c.timer = time.AfterFunc(c.debounce, func() { c.fire(gen) })
		return Snapshot{
			State:       StateDebouncing,
			Query:       q,
			Suggestions: c.snapshot.Suggestions,
		}
	})
}

// Dismiss скрывает подсказки (клик вне поля) и отбрасывает незавершенный запрос
func (c *Controller) Dismiss() {
	c.restart(func(uint64) Snapshot {
		return Snapshot{State: StateIdle, Query: c.snapshot.Query}
	})
}

// Close останавливает таймер; последующие вызовы игнорируются
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
	}
	c.cancel()
}

// restart начинает новое поколение; next вызывается под c.mu
func (c *Controller) restart(next func(gen uint64) Snapshot) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	c.snapshot = next(c.gen)
	snap, observers := c.snapshot.clone(), slices.Clone(c.observers)
	c.mu.Unlock()

	notify(observers, snap)
}

// fire срабатывает по таймеру и запрашивает подсказки для текущего текста
func (c *Controller) fire(gen uint64) {
	snap, ok := c.advance(gen, func(s *Snapshot) {
		s.State = StateFetching
	})
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.ctx, fetchTimeout)
	page, err := c.searcher.SearchMovies(ctx, snap.Query, 1)
	cancel()

	_, applied := c.advance(gen, func(s *Snapshot) {
		switch {
		case err != nil:
			*s = Snapshot{State: StateError, Query: s.Query, Err: err}
		case page == nil || len(page.Results) == 0:
			*s = Snapshot{State: StateEmpty, Query: s.Query}
		default:
			results := page.Results
			if len(results) > MaxSuggestions {
				results = results[:MaxSuggestions]
			}
			*s = Snapshot{State: StateDisplaying, Query: s.Query, Suggestions: slices.Clone(results)}
		}
	})
	if !applied {
		c.logger.Debug("discarding stale suggestions", slog.String("query", snap.Query))
	} else if err != nil {
		c.logger.Warn("failed to fetch suggestions", slog.String("query", snap.Query), slog.Any("error", err))
	}
}

// advance применяет mutate, если поколение gen все еще текущее
func (c *Controller) advance(gen uint64, mutate func(*Snapshot)) (Snapshot, bool) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		return Snapshot{}, false
	}

	mutate(&c.snapshot)
	snap, observers := c.snapshot.clone(), slices.Clone(c.observers)
	c.mu.Unlock()

	notify(observers, snap)
	return snap, true
}

func (s Snapshot) clone() Snapshot {
	s.Suggestions = slices.Clone(s.Suggestions)
	return s
}

func notify(observers []Observer, snap Snapshot) {
	for _, o := range observers {
		o(snap.clone())
	}
}

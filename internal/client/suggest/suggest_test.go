package suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/filmvault/internal/models"
)

const testDebounce = 20 * time.Millisecond

type searchCall struct {
	release chan struct{}
	query   string
}

type fakeSearcher struct {
	err     error
	calls   []*searchCall
	results int
	block   bool
	mu      sync.Mutex
}

func (f *fakeSearcher) SearchMovies(ctx context.Context, query string, page int) (*models.MoviePage, error) {
	call := &searchCall{query: query, release: make(chan struct{})}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	block, err, n := f.block, f.err, f.results
	f.mu.Unlock()

	if block {
		select {
		case <-call.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}

	movies := make([]models.Movie, n)
	for i := range movies {
		movies[i] = models.Movie{ID: i + 1, Title: fmt.Sprintf("%s %d", query, i+1)}
	}
	return &models.MoviePage{Page: page, Results: movies, TotalResults: n}, nil
}

func (f *fakeSearcher) queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.query)
	}
	return out
}

func (f *fakeSearcher) call(i int) *searchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[i]
}

type snapshots struct {
	items []Snapshot
	mu    sync.Mutex
}

func (s *snapshots) observe(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, snap)
}

func (s *snapshots) all() []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Snapshot(nil), s.items...)
}

func (s *snapshots) states() []State {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]State, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it.State)
	}
	return out
}

func newTestController(f *fakeSearcher) (*Controller, *snapshots) {
	c := New(f, slog.New(slog.DiscardHandler), WithDebounce(testDebounce))
	rec := &snapshots{}
	c.Subscribe(rec.observe)
	return c, rec
}

func waitState(t *testing.T, c *Controller, want State) Snapshot {
	t.Helper()
	require.Eventually(t, func() bool { return c.Snapshot().State == want }, time.Second, 2*time.Millisecond)
	return c.Snapshot()
}

func TestController_ShortQueryStaysIdle(t *testing.T) {
	f := &fakeSearcher{results: 3}
	c, _ := newTestController(f)
	defer c.Close()

	for _, q := range []string{"", " ", "a", "  б  "} {
		c.Update(q)
		assert.Equal(t, StateIdle, c.Snapshot().State, "query %q", q)
	}

	time.Sleep(3 * testDebounce)
	assert.Empty(t, f.queries())
}

func TestController_DebounceCoalescesTyping(t *testing.T) {
	f := &fakeSearcher{results: 8}
	c, rec := newTestController(f)
	defer c.Close()

	c.Update("fi")
	c.Update("fig")
	c.Update("figh")
	assert.Equal(t, StateDebouncing, c.Snapshot().State)

	snap := waitState(t, c, StateDisplaying)

	assert.Equal(t, []string{"figh"}, f.queries())
	assert.Equal(t, "figh", snap.Query)
	require.Len(t, snap.Suggestions, MaxSuggestions)
	assert.Equal(t, "figh 1", snap.Suggestions[0].Title)

	// наблюдатель вызывается после обновления состояния
	require.Eventually(t, func() bool { return len(rec.states()) == 5 }, time.Second, 2*time.Millisecond)
	assert.Equal(t, []State{StateDebouncing, StateDebouncing, StateDebouncing, StateFetching, StateDisplaying}, rec.states())
}

func TestController_TwoRunesIsEnough(t *testing.T) {
	f := &fakeSearcher{results: 1}
	c, _ := newTestController(f)
	defer c.Close()

	c.Update("я ")
	assert.Equal(t, StateIdle, c.Snapshot().State)

	c.Update("ял")
	waitState(t, c, StateDisplaying)
	assert.Equal(t, []string{"ял"}, f.queries())
}

func TestController_EmptyAndError(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		f := &fakeSearcher{results: 0}
		c, _ := newTestController(f)
		defer c.Close()

		c.Update("zzzz")
		snap := waitState(t, c, StateEmpty)
		assert.Empty(t, snap.Suggestions)
		assert.NoError(t, snap.Err)
	})

	t.Run("error", func(t *testing.T) {
		f := &fakeSearcher{err: errors.New("upstream down")}
		c, _ := newTestController(f)
		defer c.Close()

		c.Update("matrix")
		snap := waitState(t, c, StateError)
		assert.EqualError(t, snap.Err, "upstream down")
		assert.Empty(t, snap.Suggestions)
	})
}

func TestController_StaleResponseDiscarded(t *testing.T) {
	f := &fakeSearcher{results: 2, block: true}
	c, rec := newTestController(f)
	defer c.Close()

	c.Update("alien")
	waitState(t, c, StateFetching)

	// Пока первый запрос в полете, пользователь печатает дальше
	c.Update("aliens")
	require.Eventually(t, func() bool { return len(f.queries()) == 2 }, time.Second, 2*time.Millisecond)

	// Второй ответ приходит раньше первого
	close(f.call(1).release)
	snap := waitState(t, c, StateDisplaying)
	assert.Equal(t, "aliens", snap.Query)

	close(f.call(0).release)
	time.Sleep(3 * testDebounce)

	snap = c.Snapshot()
	assert.Equal(t, "aliens", snap.Query)
	assert.Equal(t, "aliens 1", snap.Suggestions[0].Title)

	for _, s := range rec.all() {
		if s.State == StateDisplaying {
			assert.Equal(t, "aliens", s.Query)
		}
	}
}

func TestController_DismissDiscardsPending(t *testing.T) {
	t.Run("while debouncing", func(t *testing.T) {
		f := &fakeSearcher{results: 2}
		c, _ := newTestController(f)
		defer c.Close()

		c.Update("heat")
		c.Dismiss()

		time.Sleep(3 * testDebounce)
		assert.Empty(t, f.queries())
		assert.Equal(t, StateIdle, c.Snapshot().State)
		assert.Equal(t, "heat", c.Snapshot().Query)
	})

	t.Run("while fetching", func(t *testing.T) {
		f := &fakeSearcher{results: 2, block: true}
		c, _ := newTestController(f)
		defer c.Close()

		c.Update("heat")
		waitState(t, c, StateFetching)
		c.Dismiss()
		close(f.call(0).release)

		time.Sleep(3 * testDebounce)
		snap := c.Snapshot()
		assert.Equal(t, StateIdle, snap.State)
		assert.Empty(t, snap.Suggestions)
	})

	t.Run("after displaying", func(t *testing.T) {
		f := &fakeSearcher{results: 2}
		c, _ := newTestController(f)
		defer c.Close()

		c.Update("heat")
		waitState(t, c, StateDisplaying)
		c.Dismiss()
		assert.Equal(t, StateIdle, c.Snapshot().State)
		assert.Empty(t, c.Snapshot().Suggestions)
	})
}

func TestController_ShortQueryClearsSuggestions(t *testing.T) {
	f := &fakeSearcher{results: 2}
	c, _ := newTestController(f)
	defer c.Close()

	c.Update("heat")
	waitState(t, c, StateDisplaying)

	c.Update("h")
	snap := c.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Empty(t, snap.Suggestions)
}

func TestController_CloseStopsTimer(t *testing.T) {
	f := &fakeSearcher{results: 2}
	c, rec := newTestController(f)

	c.Update("heat")
	c.Close()
	c.Close()

	time.Sleep(3 * testDebounce)
	assert.Empty(t, f.queries())

	c.Update("other")
	assert.Equal(t, []State{StateDebouncing}, rec.states())
}

func TestController_SnapshotIsCopy(t *testing.T) {
	f := &fakeSearcher{results: 2}
	c, _ := newTestController(f)
	defer c.Close()

	c.Update("heat")
	snap := waitState(t, c, StateDisplaying)
	snap.Suggestions[0].Title = "mutated"

	assert.Equal(t, "heat 1", c.Snapshot().Suggestions[0].Title)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type httpRecord struct {
	method string
	route  string
	status int
}

type fakeHTTPRecorder struct {
	records []httpRecord
	mu      sync.Mutex
}

func (f *fakeHTTPRecorder) RecordHTTPRequest(method, route string, statusCode int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, httpRecord{method: method, route: route, status: statusCode})
}

func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	rec := &fakeHTTPRecorder{}

	r := chi.NewRouter()
	r.Use(MetricsMiddleware(rec))
	r.Get("/api/catalog/movie/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	for _, path := range []string{"/api/catalog/movie/1", "/api/catalog/movie/2", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	require.Len(t, rec.records, 3)
	assert.Equal(t, httpRecord{method: "GET", route: "/api/catalog/movie/{id}", status: http.StatusBadGateway}, rec.records[0])
	assert.Equal(t, rec.records[0], rec.records[1])
	assert.Equal(t, http.StatusNotFound, rec.records[2].status)
}

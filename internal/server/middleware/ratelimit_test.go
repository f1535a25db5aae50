package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(0.001, 3, slog.New(slog.DiscardHandler))
	defer rl.Stop()

	for i := range 3 {
		assert.True(t, rl.Allow("10.0.0.1"), "request %d should pass", i)
	}
	assert.False(t, rl.Allow("10.0.0.1"))

	// Другой ключ имеет свой bucket
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestRateLimiter_Refill(t *testing.T) {
	rl := NewRateLimiter(100, 1, slog.New(slog.DiscardHandler))
	defer rl.Stop()

	require.True(t, rl.Allow("ip"))
	require.False(t, rl.Allow("ip"))

	assert.Eventually(t, func() bool { return rl.Allow("ip") }, time.Second, 5*time.Millisecond)
}

func TestRateLimiter_CleanupIdle(t *testing.T) {
	rl := NewRateLimiter(1, 1, slog.New(slog.DiscardHandler))
	defer rl.Stop()

	rl.Allow("old")
	rl.Allow("fresh")

	rl.mu.Lock()
	rl.limiters["old"].lastSeen = time.Now().Add(-time.Hour)
	rl.mu.Unlock()

	rl.cleanupIdle(time.Now())

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.limiters, "old")
	assert.Contains(t, rl.limiters, "fresh")
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(1, 1, slog.New(slog.DiscardHandler))
	assert.NotPanics(t, func() {
		rl.Stop()
		rl.Stop()
	})
}

func TestRateLimiter_Middleware(t *testing.T) {
	var logBuf strings.Builder
	rl := NewRateLimiter(0.001, 2, slog.New(slog.NewTextHandler(&logBuf, nil)))
	defer rl.Stop()

	handler := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "192.168.1.7:5000"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)

		if w.Code == http.StatusTooManyRequests {
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, `{"success":false,"error":"Too many requests, please try again later"}`, w.Body.String())
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Contains(t, logBuf.String(), "Rate limit exceeded")
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		headers    map[string]string
		name       string
		remoteAddr string
		expected   string
	}{
		{name: "remote addr without port", remoteAddr: "192.168.1.1:12345", expected: "192.168.1.1"},
		{name: "remote addr ipv6", remoteAddr: "[::1]:8080", expected: "::1"},
		{name: "remote addr without port at all", remoteAddr: "192.168.1.1", expected: "192.168.1.1"},
		{
			name:       "X-Forwarded-For single",
			remoteAddr: "10.0.0.1:1",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.1"},
			expected:   "203.0.113.1",
		},
		{
			name:       "X-Forwarded-For chain",
			remoteAddr: "10.0.0.1:1",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.1, 70.41.3.18"},
			expected:   "203.0.113.1",
		},
		{
			name:       "X-Real-IP",
			remoteAddr: "10.0.0.1:1",
			headers:    map[string]string{"X-Real-IP": "198.51.100.4"},
			expected:   "198.51.100.4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, getClientIP(req))
		})
	}
}

package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/filmvault/internal/models"
	"github.com/iudanet/filmvault/internal/server/handlers"
)

var testJWTConfig = handlers.JWTConfig{
	Secret:     []byte("test-secret"),
	SessionTTL: time.Hour,
}

func issueToken(t *testing.T, cfg handlers.JWTConfig, expiresAt time.Time) string {
	t.Helper()

	user := &models.User{ID: "user-1", Name: "Alice", Email: "alice@example.com"}
	session := &models.Session{ID: "session-1", UserID: user.ID, IssuedAt: time.Now().Add(-time.Minute), ExpiresAt: expiresAt}

	token, err := handlers.GenerateSessionToken(cfg, user, session)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware_Success(t *testing.T) {
	token := issueToken(t, testJWTConfig, time.Now().Add(time.Hour))

	var gotClaims *handlers.SessionClaims
	handler := AuthMiddleware(slog.New(slog.DiscardHandler), testJWTConfig)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := handlers.ClaimsFromContext(r.Context())
			require.True(t, ok)
			gotClaims = claims
			w.WriteHeader(http.StatusOK)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotClaims)
	assert.Equal(t, "user-1", gotClaims.UserID)
	assert.Equal(t, "session-1", gotClaims.ID)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	valid := issueToken(t, testJWTConfig, time.Now().Add(time.Hour))

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic " + valid},
		{name: "no token", header: "Bearer "},
		{name: "garbage token", header: "Bearer invalid.token.here"},
		{name: "expired token", header: "Bearer " + issueToken(t, testJWTConfig, time.Now().Add(-time.Second))},
		{name: "wrong secret", header: "Bearer " + issueToken(t, handlers.JWTConfig{Secret: []byte("other")}, time.Now().Add(time.Hour))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := AuthMiddleware(slog.New(slog.DiscardHandler), testJWTConfig)(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }),
			)

			req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"success":false,"error":"Unauthorized"}`, w.Body.String())
		})
	}
}

func TestAuthMiddleware_CaseInsensitiveScheme(t *testing.T) {
	token := issueToken(t, testJWTConfig, time.Now().Add(time.Hour))

	handler := AuthMiddleware(slog.New(slog.DiscardHandler), testJWTConfig)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) }),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

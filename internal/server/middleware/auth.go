package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/filmvault/internal/server/handlers"
)

// AuthMiddleware создает middleware для проверки JWT сессии
// Проверяет подпись и срок токена и кладет claims в контекст;
// существование сессии в хранилище проверяют сами handlers
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Извлекаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("Missing Authorization header")
				unauthorized(w)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				logger.Warn("Invalid Authorization header format")
				unauthorized(w)
				return
			}

			// Валидируем токен
			claims, err := handlers.ValidateSessionToken(jwtConfig, parts[1])
			if err != nil {
				logger.Warn("Invalid session token", "error", err)
				unauthorized(w)
				return
			}

			logger.Debug("User authenticated", "user_id", claims.UserID, "session_id", claims.ID)

			// Передаем запрос дальше с обновленным контекстом
			next.ServeHTTP(w, r.WithContext(handlers.WithClaims(r.Context(), claims)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"error":"Unauthorized"}`))
}

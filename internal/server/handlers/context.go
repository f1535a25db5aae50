package handlers

import "context"

type contextKey string

// ClaimsKey ключ для хранения claims сессии в контексте
const ClaimsKey contextKey = "session_claims"

// WithClaims кладет claims в контекст (используется AuthMiddleware)
func WithClaims(ctx context.Context, claims *SessionClaims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// ClaimsFromContext извлекает claims сессии из контекста
func ClaimsFromContext(ctx context.Context) (*SessionClaims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*SessionClaims)
	return claims, ok && claims != nil
}

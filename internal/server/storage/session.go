package storage

import (
	"context"
	"time"

	"github.com/iudanet/filmvault/internal/models"
)

// SessionStorage defines interface for server-side session persistence
type SessionStorage interface {
	// SaveSession stores a new session
	SaveSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves session by ID
	// Returns ErrSessionNotFound if session doesn't exist
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)

	// ExtendSession moves session expiry forward (sliding window)
	// Returns ErrSessionNotFound if session doesn't exist
	ExtendSession(ctx context.Context, sessionID string, expiresAt time.Time) error

	// DeleteSession removes a single session (logout)
	// Returns ErrSessionNotFound if session doesn't exist
	DeleteSession(ctx context.Context, sessionID string) error

	// DeleteUserSessions removes all sessions of a user
	// Returns number of deleted sessions
	DeleteUserSessions(ctx context.Context, userID string) (int, error)

	// DeleteExpiredSessions removes sessions expired before now
	// Returns number of deleted sessions
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
}

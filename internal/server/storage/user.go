package storage

import (
	"context"
	"time"

	"github.com/iudanet/filmvault/internal/models"
)

// UserStorage defines the credential store: users keyed by unique email.
// Emails are expected to be normalized by the caller (see validation.NormalizeEmail).
type UserStorage interface {
	// CreateUser appends a new user
	// Returns ErrUserAlreadyExists if the email is taken
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves user by email
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// UserExists reports whether a user with the email is registered
	UserExists(ctx context.Context, email string) (bool, error)

	// CountUsers returns the number of registered users
	CountUsers(ctx context.Context) (int, error)

	// UpdateLastLogin updates the last login timestamp
	// Returns ErrUserNotFound if user doesn't exist
	UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error
}

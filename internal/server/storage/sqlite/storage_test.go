package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/filmvault/internal/models"
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(context.Background(), dbPath)
	require.NoError(t, err)

	return s, func() {
		_ = s.Close()
	}
}

func createTestUser(t *testing.T, s *Storage, email string) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.CreateUser(context.Background(), user))

	return user
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestNew_RunsMigrations(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	var count int
	err := s.DB().QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'sessions')`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	require.NoError(t, s.Ping(context.Background()))
}

func TestNew_ReopenExistingDatabase(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "reopen.db")

	s, err := New(ctx, dbPath)
	require.NoError(t, err)
	createTestUser(t, s, "reopen@example.com")
	require.NoError(t, s.Close())

	s, err = New(ctx, dbPath)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	count, err := s.CountUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

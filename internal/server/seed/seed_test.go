package seed

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/filmvault/internal/crypto"
	"github.com/iudanet/filmvault/internal/server/storage/sqlite"
)

func TestDemoUser(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.New(ctx, filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	logger := slog.New(slog.DiscardHandler)

	created, err := DemoUser(ctx, store, bcrypt.MinCost, logger)
	require.NoError(t, err)
	assert.True(t, created)

	// Повторный запуск ничего не меняет
	created, err = DemoUser(ctx, store, bcrypt.MinCost, logger)
	require.NoError(t, err)
	assert.False(t, created)

	count, err := store.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	user, err := store.GetUserByEmail(ctx, DemoEmail)
	require.NoError(t, err)
	assert.Equal(t, DemoName, user.Name)
	assert.NoError(t, crypto.ComparePassword(user.PasswordHash, DemoPassword))
}

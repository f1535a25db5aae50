package boltdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/filmvault/internal/client/storage"
)

func TestStorage_Preferences(t *testing.T) {
	ctx := context.Background()
	store := setupTestStorage(t)

	_, err := store.GetPreference(ctx, "theme")
	assert.ErrorIs(t, err, storage.ErrPreferenceNotFound)

	require.NoError(t, store.SetPreference(ctx, "theme", "dark"))
	got, err := store.GetPreference(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", got)

	require.NoError(t, store.SetPreference(ctx, "theme", "light"))
	got, err = store.GetPreference(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", got)
}

package theme

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/filmvault/internal/client/storage/boltdb"
)

func setupTestService(t *testing.T, fallback string) (*Service, *boltdb.Storage) {
	t.Helper()

	db, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "theme.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewService(db, fallback, slog.New(slog.DiscardHandler)), db
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Theme
		wantErr bool
	}{
		{in: "light", want: Light},
		{in: "dark", want: Dark},
		{in: " DARK ", want: Dark},
		{in: "", wantErr: true},
		{in: "solarized", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTheme)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Default(t *testing.T) {
	tests := []struct {
		fallback string
		want     Theme
	}{
		{fallback: "", want: Light},
		{fallback: "dark", want: Dark},
		{fallback: "neon", want: Light},
	}

	for _, tt := range tests {
		t.Run(tt.fallback, func(t *testing.T) {
			s, _ := setupTestService(t, tt.fallback)
			assert.Equal(t, tt.want, s.Get(context.Background()))
		})
	}
}

func TestService_SetAndToggle(t *testing.T) {
	ctx := context.Background()
	s, _ := setupTestService(t, "")

	require.NoError(t, s.Set(ctx, Dark))
	assert.Equal(t, Dark, s.Get(ctx))

	got, err := s.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Light, got)
	assert.Equal(t, Light, s.Get(ctx))

	got, err = s.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Dark, got)

	assert.ErrorIs(t, s.Set(ctx, Theme("blue")), ErrInvalidTheme)
	assert.Equal(t, Dark, s.Get(ctx))
}

func TestService_InvalidStoredValue(t *testing.T) {
	ctx := context.Background()
	s, db := setupTestService(t, "dark")

	require.NoError(t, db.SetPreference(ctx, PreferenceKey, "sepia"))
	assert.Equal(t, Dark, s.Get(ctx))

	// Toggle от значения по умолчанию
	got, err := s.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Light, got)
}

type brokenPrefs struct{}

func (brokenPrefs) GetPreference(context.Context, string) (string, error) {
	return "", errors.New("io error")
}

func (brokenPrefs) SetPreference(context.Context, string, string) error {
	return errors.New("io error")
}

func TestService_StorageErrors(t *testing.T) {
	ctx := context.Background()
	s := NewService(brokenPrefs{}, "dark", slog.New(slog.DiscardHandler))

	assert.Equal(t, Dark, s.Get(ctx))

	_, err := s.Toggle(ctx)
	assert.Error(t, err)
}

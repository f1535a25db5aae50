package storage

import "context"

// PreferenceStorage хранит настройки клиента (тема и т.п.)
type PreferenceStorage interface {
	// GetPreference returns ErrPreferenceNotFound if key is not set
	GetPreference(ctx context.Context, key string) (string, error)
	SetPreference(ctx context.Context, key, value string) error
}

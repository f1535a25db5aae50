package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/filmvault/internal/client/storage"
)

// GetPreference returns stored preference value
func (s *Storage) GetPreference(ctx context.Context, key string) (string, error) {
	var value string

	err := s.db.View(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketPreferences)
		if err != nil {
			return err
		}

		v := b.Get([]byte(key))
		if v == nil {
			return storage.ErrPreferenceNotFound
		}
		value = string(v)
		return nil
	})
	if err != nil {
		return "", err
	}

	return value, nil
}

// SetPreference stores preference value
func (s *Storage) SetPreference(ctx context.Context, key, value string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketPreferences)
		if err != nil {
			return err
		}

		if err := b.Put([]byte(key), []byte(value)); err != nil {
			return fmt.Errorf("failed to save preference %q: %w", key, err)
		}
		return nil
	})
}

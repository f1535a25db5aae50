package boltdb

import (
	"bytes"
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/filmvault/internal/client/storage"
)

// GetFavorites возвращает копию значения избранного пользователя
func (s *Storage) GetFavorites(ctx context.Context, userID string) ([]byte, error) {
	if userID == "" {
		return nil, storage.ErrEmptyUserID
	}

	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketFavorites)
		if err != nil {
			return err
		}

		v := b.Get([]byte(userID))
		if v == nil {
			return storage.ErrFavoritesNotFound
		}
		data = bytes.Clone(v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

// SaveFavorites заменяет значение избранного пользователя
func (s *Storage) SaveFavorites(ctx context.Context, userID string, data []byte) error {
	if userID == "" {
		return storage.ErrEmptyUserID
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketFavorites)
		if err != nil {
			return err
		}

		if err := b.Put([]byte(userID), data); err != nil {
			return fmt.Errorf("failed to save favorites: %w", err)
		}
		return nil
	})
}

// DeleteFavorites удаляет значение избранного пользователя
func (s *Storage) DeleteFavorites(ctx context.Context, userID string) error {
	if userID == "" {
		return storage.ErrEmptyUserID
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketFavorites)
		if err != nil {
			return err
		}

		if err := b.Delete([]byte(userID)); err != nil {
			return fmt.Errorf("failed to delete favorites: %w", err)
		}
		return nil
	})
}

package storage

import "context"

// FavoritesStorage хранит избранное пользователей
// Значение под ключом userID целиком заменяется при каждой записи; формат определяет вызывающий
type FavoritesStorage interface {
	// GetFavorites возвращает сохраненное значение пользователя
	// Returns ErrFavoritesNotFound if the user has nothing stored
	GetFavorites(ctx context.Context, userID string) ([]byte, error)

	// SaveFavorites заменяет значение пользователя
	SaveFavorites(ctx context.Context, userID string, data []byte) error

	// DeleteFavorites удаляет значение пользователя
	DeleteFavorites(ctx context.Context, userID string) error
}

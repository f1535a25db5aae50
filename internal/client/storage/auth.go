package storage

import (
	"context"
	"time"
)

// AuthStorage хранит токен текущей сессии на клиенте
// Хранится не больше одной записи: новая сессия перезаписывает предыдущую
type AuthStorage interface {
	// SaveAuth сохраняет данные сессии, заменяя предыдущие
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth возвращает сохраненные данные сессии
	// Returns ErrAuthNotFound if no auth data exists
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth удаляет данные сессии (logout)
	// Удаление отсутствующей записи не является ошибкой
	DeleteAuth(ctx context.Context) error
}

// AuthData сессия пользователя, сохраненная на клиенте
// Пароль никогда не сохраняется, только подписанный сервером токен
type AuthData struct {
	ExpiresAt time.Time `json:"expires_at"`
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
}

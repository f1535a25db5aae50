// Package seed создает демо-пользователя для локального запуска.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/filmvault/internal/crypto"
	"github.com/iudanet/filmvault/internal/models"
	"github.com/iudanet/filmvault/internal/server/storage"
)

// Учетные данные демо-пользователя
const (
	DemoName     = "Demo User"
	DemoEmail    = "user@example.com"
	DemoPassword = "password"
)

// DemoUser создает демо-пользователя, если его еще нет
// Возвращает true, если пользователь был создан
func DemoUser(ctx context.Context, users storage.UserStorage, cost int, logger *slog.Logger) (bool, error) {
	exists, err := users.UserExists(ctx, DemoEmail)
	if err != nil {
		return false, fmt.Errorf("failed to check demo user: %w", err)
	}
	if exists {
		return false, nil
	}

	hash, err := crypto.HashPassword(DemoPassword, cost)
	if err != nil {
		return false, fmt.Errorf("failed to hash demo password: %w", err)
	}

	err = users.CreateUser(ctx, &models.User{
		ID:           uuid.New().String(),
		Name:         DemoName,
		Email:        DemoEmail,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		// Параллельный запуск уже создал пользователя
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create demo user: %w", err)
	}

	logger.InfoContext(ctx, "demo user created", slog.String("email", DemoEmail))
	return true, nil
}

// Package janitor периодически удаляет истекшие сессии.
package janitor

import (
	"context"
	"log/slog"
	"time"
)

// ExpiredSessionDeleter часть storage.SessionStorage, нужная janitor
type ExpiredSessionDeleter interface {
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
}

// Janitor фоновая очистка истекших сессий
type Janitor struct {
	sessions ExpiredSessionDeleter
	logger   *slog.Logger
	now      func() time.Time
	interval time.Duration
}

// New создает Janitor
func New(sessions ExpiredSessionDeleter, interval time.Duration, logger *slog.Logger) *Janitor {
	return &Janitor{
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
		interval: interval,
	}
}

// RunOnce удаляет истекшие на текущий момент сессии
// Идемпотентен: если удалять нечего, ошибки нет
func (j *Janitor) RunOnce(ctx context.Context) (int, error) {
	deleted, err := j.sessions.DeleteExpiredSessions(ctx, j.now())
	if err != nil {
		j.logger.ErrorContext(ctx, "session cleanup failed", slog.Any("error", err))
		return 0, err
	}

	if deleted > 0 {
		j.logger.InfoContext(ctx, "expired sessions removed", slog.Int("deleted", deleted))
	}

	return deleted, nil
}

// Run чистит сессии сразу и затем раз в interval, пока не отменен ctx
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	_, _ = j.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			j.logger.Debug("session janitor stopped")
			return
		case <-ticker.C:
			_, _ = j.RunOnce(ctx)
		}
	}
}

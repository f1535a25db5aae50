// Package theme хранит выбранную пользователем цветовую тему.
package theme

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/iudanet/filmvault/internal/client/storage"
)

// Theme цветовая тема
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// PreferenceKey ключ темы в хранилище настроек
const PreferenceKey = "theme"

// ErrInvalidTheme неизвестное значение темы
var ErrInvalidTheme = errors.New("invalid theme")

// Parse разбирает название темы без учета регистра
func Parse(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case Light, Dark:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q (expected light or dark)", ErrInvalidTheme, s)
	}
}

// Opposite возвращает противоположную тему
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Service читает и меняет тему
type Service struct {
	prefs    storage.PreferenceStorage
	logger   *slog.Logger
	fallback Theme
}

// NewService создает сервис; fallback используется, пока тема не выбрана
// Неизвестный fallback заменяется на Light
func NewService(prefs storage.PreferenceStorage, fallback string, logger *slog.Logger) *Service {
	t, err := Parse(fallback)
	if err != nil {
		if fallback != "" {
			logger.Warn("ignoring invalid default theme", slog.String("theme", fallback))
		}
		t = Light
	}

	return &Service{
		prefs:    prefs,
		logger:   logger,
		fallback: t,
	}
}

// Get возвращает сохраненную тему или значение по умолчанию
func (s *Service) Get(ctx context.Context) Theme {
	raw, err := s.prefs.GetPreference(ctx, PreferenceKey)
	if err != nil {
		if !errors.Is(err, storage.ErrPreferenceNotFound) {
			s.logger.WarnContext(ctx, "failed to read theme preference", slog.Any("error", err))
		}
		return s.fallback
	}

	t, err := Parse(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "stored theme is invalid, using default", slog.String("stored", raw))
		return s.fallback
	}
	return t
}

// Set сохраняет тему
func (s *Service) Set(ctx context.Context, t Theme) error {
	if _, err := Parse(string(t)); err != nil {
		return err
	}

	if err := s.prefs.SetPreference(ctx, PreferenceKey, string(t)); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// Toggle переключает тему и возвращает новую
func (s *Service) Toggle(ctx context.Context) (Theme, error) {
	next := s.Get(ctx).Opposite()
	if err := s.Set(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

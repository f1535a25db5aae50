// Package favorites хранит избранное текущего пользователя поверх клиентского key-value хранилища.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/iudanet/filmvault/internal/client/session"
	"github.com/iudanet/filmvault/internal/client/storage"
	"github.com/iudanet/filmvault/internal/models"
)

// ErrParse сохраненное значение не является JSON массивом записей
var ErrParse = errors.New("failed to parse favorites")

// Store избранное пользователя текущей сессии
//
// Без аутентифицированной сессии все операции пустые: Add и Remove ничего
// не делают, Contains возвращает false, List пустой список.
type Store struct {
	storage storage.FavoritesStorage
	logger  *slog.Logger
	now     func() time.Time
	// userID владелец загруженного списка; пустой без сессии
	userID  string
	entries []models.FavoriteEntry
	mu      sync.RWMutex
}

// New создает пустой Store; список загружается при входе пользователя
func New(favStorage storage.FavoritesStorage, logger *slog.Logger) *Store {
	return &Store{
		storage: favStorage,
		logger:  logger,
		now:     time.Now,
	}
}

// OnSessionChange реализует session.Listener
// Вход загружает сохраненный список пользователя, выход очищает только память.
func (s *Store) OnSessionChange(status session.Status, user *models.UserInfo) {
	if status != session.StatusAuthenticated || user == nil {
		s.mu.Lock()
		s.userID = ""
		s.entries = nil
		s.mu.Unlock()
		return
	}

	entries := s.load(context.Background(), user.ID)

	s.mu.Lock()
	s.userID = user.ID
	s.entries = entries
	s.mu.Unlock()
}

// Add добавляет запись; повторное добавление того же элемента ничего не меняет
func (s *Store) Add(ctx context.Context, entry models.FavoriteEntry) error {
	if !entry.MediaType.Valid() {
		return fmt.Errorf("unknown media type %q", entry.MediaType)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" || s.indexOf(entry.Key()) >= 0 {
		return nil
	}

	if entry.AddedAt.IsZero() {
		entry.AddedAt = s.now().UTC()
	}

	next := append(slices.Clone(s.entries), entry)
	if err := s.persist(ctx, s.userID, next); err != nil {
		return err
	}
	s.entries = next
	return nil
}

// Remove удаляет запись по ключу (см. models.FavoriteKey)
func (s *Store) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return nil
	}

	i := s.indexOf(key)
	if i < 0 {
		return nil
	}

	next := slices.Delete(slices.Clone(s.entries), i, i+1)
	if err := s.persist(ctx, s.userID, next); err != nil {
		return err
	}
	s.entries = next
	return nil
}

// Contains сообщает, есть ли элемент в избранном
func (s *Store) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.userID != "" && s.indexOf(key) >= 0
}

// List возвращает копию списка в порядке добавления
func (s *Store) List() []models.FavoriteEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.userID == "" {
		return []models.FavoriteEntry{}
	}
	return append([]models.FavoriteEntry{}, s.entries...)
}

// indexOf вызывается под s.mu
func (s *Store) indexOf(key string) int {
	return slices.IndexFunc(s.entries, func(e models.FavoriteEntry) bool {
		return e.Key() == key
	})
}

// persist целиком заменяет сохраненный список; userID фиксируется вызывающим под s.mu
func (s *Store) persist(ctx context.Context, userID string, entries []models.FavoriteEntry) error {
	if entries == nil {
		entries = []models.FavoriteEntry{}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal favorites: %w", err)
	}

	if err := s.storage.SaveFavorites(ctx, userID, data); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}

// load читает список пользователя; поврежденное значение удаляется
func (s *Store) load(ctx context.Context, userID string) []models.FavoriteEntry {
	data, err := s.storage.GetFavorites(ctx, userID)
	if err != nil {
		if !errors.Is(err, storage.ErrFavoritesNotFound) {
			s.logger.Warn("failed to load favorites", slog.String("user_id", userID), slog.Any("error", err))
		}
		return nil
	}

	entries, err := decode(data)
	if err != nil {
		s.logger.Warn("stored favorites are corrupt, resetting",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		if delErr := s.storage.DeleteFavorites(ctx, userID); delErr != nil {
			s.logger.Warn("failed to delete corrupt favorites", slog.Any("error", delErr))
		}
		return nil
	}

	return entries
}

// decode разбирает сохраненный массив, отбрасывая дубликаты и записи неизвестного типа
func decode(data []byte) ([]models.FavoriteEntry, error) {
	var raw []models.FavoriteEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	seen := make(map[string]struct{}, len(raw))
	entries := make([]models.FavoriteEntry, 0, len(raw))
	for _, e := range raw {
		if !e.MediaType.Valid() {
			continue
		}
		key := e.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		entries = append(entries, e)
	}
	return entries, nil
}

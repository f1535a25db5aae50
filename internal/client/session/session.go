// Package session хранит состояние аутентификации клиента и уведомляет подписчиков о его смене.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	clientapi "github.com/iudanet/filmvault/internal/client/api"
	"github.com/iudanet/filmvault/internal/client/storage"
	"github.com/iudanet/filmvault/internal/models"
	"github.com/iudanet/filmvault/internal/validation"
	"github.com/iudanet/filmvault/pkg/api"
)

// Status состояние сессии клиента
type Status string

const (
	StatusLoading         Status = "loading"         // сохраненный токен еще не проверен
	StatusAuthenticated   Status = "authenticated"   // сервер подтвердил сессию
	StatusUnauthenticated Status = "unauthenticated" // сессии нет
)

var (
	// ErrInvalidCredentials неверный email или пароль
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrDuplicateUser пользователь с таким email уже зарегистрирован
	ErrDuplicateUser = errors.New("user already exists")
)

// Listener вызывается синхронно при каждой смене статуса или пользователя
// user равен nil, если status не StatusAuthenticated
type Listener func(status Status, user *models.UserInfo)

// AuthAPI серверные операции аутентификации
type AuthAPI interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.SessionResponse, error)
	Session(ctx context.Context, token string) (*api.SessionResponse, error)
	Logout(ctx context.Context, token string) error
}

// Manager управляет сессией клиента
//
// Переходы: loading → authenticated|unauthenticated, далее только между
// authenticated и unauthenticated. В loading менеджер не возвращается.
type Manager struct {
	api       AuthAPI
	store     storage.AuthStorage
	logger    *slog.Logger
	user      *models.UserInfo
	initErr   error
	status    Status
	listeners []Listener
	// epoch растет при каждом Login/Logout; Init применяет результат только если epoch не менялся
	epoch uint64
	mu    sync.RWMutex
	// stateMu упорядочивает запись токена, смену состояния и доставку уведомлений
	stateMu  sync.Mutex
	initOnce sync.Once
}

// NewManager создает менеджер в состоянии loading
func NewManager(authAPI AuthAPI, store storage.AuthStorage, logger *slog.Logger) *Manager {
	return &Manager{
		api:    authAPI,
		store:  store,
		logger: logger,
		status: StatusLoading,
	}
}

// Status возвращает текущий статус
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// CurrentUser возвращает копию данных пользователя или nil без сессии
func (m *Manager) CurrentUser() *models.UserInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Subscribe регистрирует слушателя смены статуса
func (m *Manager) Subscribe(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Token возвращает сохраненный токен текущей сессии
func (m *Manager) Token(ctx context.Context) (string, error) {
	if m.Status() != StatusAuthenticated {
		return "", storage.ErrAuthNotFound
	}

	auth, err := m.store.GetAuth(ctx)
	if err != nil {
		return "", err
	}
	return auth.Token, nil
}

// Init проверяет сохраненный токен на сервере; выполняется ровно один раз
//
// Отклоненный сервером токен удаляется. При сетевой ошибке токен остается
// для следующего запуска, пользователь считается неаутентифицированным,
// а ошибка возвращается вызывающему.
func (m *Manager) Init(ctx context.Context) error {
	m.initOnce.Do(func() {
		m.initErr = m.restore(ctx)
	})
	return m.initErr
}

func (m *Manager) restore(ctx context.Context) error {
	m.mu.RLock()
	status, epoch := m.status, m.epoch
	m.mu.RUnlock()

	// Login/Register уже завершили фазу loading
	if status != StatusLoading {
		return nil
	}

	auth, err := m.store.GetAuth(ctx)
	if err != nil {
		m.commitIf(epoch, nil, StatusUnauthenticated, nil)
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil
		}
		return fmt.Errorf("failed to read stored session: %w", err)
	}

	resp, err := m.api.Session(ctx, auth.Token)
	if err != nil {
		if errors.Is(err, clientapi.ErrUnauthorized) {
			m.logger.InfoContext(ctx, "stored session rejected by server, removing token")
			m.commitIf(epoch, func() error { return m.store.DeleteAuth(ctx) }, StatusUnauthenticated, nil)
			return nil
		}

		m.logger.WarnContext(ctx, "failed to validate stored session, keeping token", slog.Any("error", err))
		m.commitIf(epoch, nil, StatusUnauthenticated, nil)
		return fmt.Errorf("failed to validate session: %w", err)
	}

	// Сервер продлил сессию и выдал новый токен
	user := userFrom(resp)
	m.commitIf(epoch, func() error { return m.store.SaveAuth(ctx, authDataFrom(resp)) }, StatusAuthenticated, &user)
	return nil
}

// Login аутентифицирует пользователя и сохраняет токен
func (m *Manager) Login(ctx context.Context, email, password string) error {
	resp, err := m.api.Login(ctx, api.LoginRequest{
		Email:    validation.NormalizeEmail(email),
		Password: password,
	})
	if err != nil {
		if errors.Is(err, clientapi.ErrUnauthorized) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to login: %w", err)
	}

	user := userFrom(resp)
	err = m.commit(func() error {
		if err := m.store.SaveAuth(ctx, authDataFrom(resp)); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	}, StatusAuthenticated, &user)
	if err != nil {
		return err
	}

	m.logger.InfoContext(ctx, "logged in", slog.String("user_id", user.ID))
	return nil
}

// Register регистрирует пользователя и сразу выполняет вход
func (m *Manager) Register(ctx context.Context, name, email, password string) error {
	email = validation.NormalizeEmail(email)

	if err := validation.ValidateName(name); err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	_, err := m.api.Register(ctx, api.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		if errors.Is(err, clientapi.ErrConflict) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("failed to register: %w", err)
	}

	return m.Login(ctx, email, password)
}

// Logout отзывает сессию на сервере (best effort) и удаляет локальный токен
func (m *Manager) Logout(ctx context.Context) error {
	auth, err := m.store.GetAuth(ctx)
	switch {
	case err == nil:
		if err := m.api.Logout(ctx, auth.Token); err != nil {
			m.logger.WarnContext(ctx, "failed to revoke session on server", slog.Any("error", err))
		}
	case !errors.Is(err, storage.ErrAuthNotFound):
		m.logger.WarnContext(ctx, "failed to read stored session", slog.Any("error", err))
	}

	// Статус меняется даже если локальный токен удалить не удалось
	var deleteErr error
	_ = m.commit(func() error {
		if err := m.store.DeleteAuth(ctx); err != nil {
			deleteErr = fmt.Errorf("failed to delete local session: %w", err)
		}
		return nil
	}, StatusUnauthenticated, nil)

	return deleteErr
}

// commit сохраняет изменения через persist и переводит менеджер в новое состояние
// Ошибка persist отменяет переход
func (m *Manager) commit(persist func() error, status Status, user *models.UserInfo) error {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()

	if persist != nil {
		if err := persist(); err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.epoch++
	listeners := m.apply(status, user)
	m.mu.Unlock()

	notify(listeners, status, user)
	return nil
}

// commitIf как commit, но ничего не делает, если с момента epoch был Login/Logout
func (m *Manager) commitIf(epoch uint64, persist func() error, status Status, user *models.UserInfo) {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()

	m.mu.RLock()
	stale := m.epoch != epoch
	m.mu.RUnlock()
	if stale {
		return
	}

	if persist != nil {
		if err := persist(); err != nil {
			m.logger.Warn("failed to persist session state", slog.Any("error", err))
		}
	}

	m.mu.Lock()
	listeners := m.apply(status, user)
	m.mu.Unlock()

	notify(listeners, status, user)
}

// apply вызывается под m.mu; возвращает слушателей, если состояние изменилось
func (m *Manager) apply(status Status, user *models.UserInfo) []Listener {
	changed := m.status != status || !sameUser(m.user, user)

	m.status = status
	m.user = user

	if !changed {
		return nil
	}
	return append([]Listener(nil), m.listeners...)
}

func notify(listeners []Listener, status Status, user *models.UserInfo) {
	for _, l := range listeners {
		var u *models.UserInfo
		if user != nil {
			c := *user
			u = &c
		}
		l(status, u)
	}
}

func sameUser(a, b *models.UserInfo) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func userFrom(resp *api.SessionResponse) models.UserInfo {
	return models.UserInfo{
		ID:    resp.User.ID,
		Name:  resp.User.Name,
		Email: resp.User.Email,
	}
}

func authDataFrom(resp *api.SessionResponse) *storage.AuthData {
	return &storage.AuthData{
		Token:     resp.Token,
		ExpiresAt: resp.ExpiresAt,
		UserID:    resp.User.ID,
		Name:      resp.User.Name,
		Email:     resp.User.Email,
	}
}

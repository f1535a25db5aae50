package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/filmvault/internal/crypto"
	"github.com/iudanet/filmvault/internal/models"
	"github.com/iudanet/filmvault/internal/server/storage"
	"github.com/iudanet/filmvault/internal/validation"
	"github.com/iudanet/filmvault/pkg/api"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgUserExists         = "User already exists"
	msgInternal           = "Internal server error"
	msgUnauthorized       = "Unauthorized"
)

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger         *slog.Logger
	userStorage    storage.UserStorage
	sessionStorage storage.SessionStorage
	jwtConfig      JWTConfig
	bcryptCost     int
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, sessionStorage storage.SessionStorage, jwtConfig JWTConfig) *AuthHandler {
	return &AuthHandler{
		logger:         logger,
		userStorage:    userStorage,
		sessionStorage: sessionStorage,
		jwtConfig:      jwtConfig,
		bcryptCost:     crypto.DefaultCost,
	}
}

// WithBcryptCost меняет стоимость bcrypt (в тестах ставим минимальную)
func (h *AuthHandler) WithBcryptCost(cost int) *AuthHandler {
	h.bcryptCost = cost
	return h
}

// Register обрабатывает POST /api/auth/register
// Регистрация нового пользователя
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Парсим request body
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		sendError(h.logger, w, "Invalid request body", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(req.Name)
	email := validation.NormalizeEmail(req.Email)

	if name == "" || email == "" || req.Password == "" {
		sendError(h.logger, w, "Name, email and password are required", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateName(name); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateEmail(email); err != nil {
		h.logger.WarnContext(ctx, "invalid email", slog.Any("error", err))
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	exists, err := h.userStorage.UserExists(ctx, email)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to check user existence", slog.Any("error", err))
		sendError(h.logger, w, msgInternal, http.StatusInternalServerError)
		return
	}
	if exists {
		h.logger.WarnContext(ctx, "user already exists", slog.String("email", email))
		sendError(h.logger, w, msgUserExists, http.StatusConflict)
		return
	}

	hash, err := crypto.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, msgInternal, http.StatusInternalServerError)
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	// Сохраняем в БД; гонку двух регистраций ловит UNIQUE индекс
	if err := h.userStorage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "user already exists", slog.String("email", email))
			sendError(h.logger, w, msgUserExists, http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		sendError(h.logger, w, msgInternal, http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("email", email),
		slog.String("user_id", user.ID))

	info := toAPIUser(user.ID, user.Name, user.Email)
	sendJSON(h.logger, w, api.RegisterResponse{Success: true, User: &info}, http.StatusOK)
}

// Login обрабатывает POST /api/auth/login
// Неизвестный email и неверный пароль неразличимы для клиента
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "Invalid request body", http.StatusBadRequest)
		return
	}

	email := validation.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		sendError(h.logger, w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: user not found", slog.String("email", email))
			sendError(h.logger, w, msgInvalidCredentials, http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, msgInternal, http.StatusInternalServerError)
		return
	}

	if err := crypto.ComparePassword(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, crypto.ErrPasswordMismatch) {
			h.logger.WarnContext(ctx, "login failed: wrong password", slog.String("email", email))
			sendError(h.logger, w, msgInvalidCredentials, http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to compare password", slog.Any("error", err))
		sendError(h.logger, w, msgInternal, http.StatusInternalServerError)
		return
	}

	now := time.Now()
	session := &models.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		IssuedAt:  now,
		ExpiresAt: now.Add(h.jwtConfig.ttl()),
	}

	token, err := GenerateSessionToken(h.jwtConfig, user, session)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate session token", slog.Any("error", err))
		sendError(h.logger, w, msgInternal, http.StatusInternalServerError)
		return
	}

	if err := h.sessionStorage.SaveSession(ctx, session); err != nil {
		h.logger.ErrorContext(ctx, "failed to save session", slog.Any("error", err))
		sendError(h.logger, w, msgInternal, http.StatusInternalServerError)
		return
	}

	// Обновляем last_login
	if err := h.userStorage.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// Не критичная ошибка, логируем но не прерываем
		h.logger.WarnContext(ctx, "failed to update last login", slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "user logged in successfully",
		slog.String("user_id", user.ID),
		slog.String("session_id", session.ID))

	sendJSON(h.logger, w, api.SessionResponse{
		Success:   true,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      toAPIUser(user.ID, user.Name, user.Email),
	}, http.StatusOK)
}

// Session обрабатывает GET /api/auth/session
// Возвращает текущего пользователя и сдвигает срок сессии на полное окно
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		sendError(h.logger, w, msgUnauthorized, http.StatusUnauthorized)
		return
	}

	session, err := h.sessionStorage.GetSession(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			h.logger.WarnContext(ctx, "session not found", slog.String("session_id", claims.ID))
			sendError(h.logger, w, msgUnauthorized, http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get session", slog.Any("error", err))
		sendError(h.logger, w, msgInternal, http.StatusInternalServerError)
		return
	}

	now := time.Now()
	if session.UserID != claims.UserID || session.Expired(now) {
		h.logger.WarnContext(ctx, "session rejected",
			slog.String("session_id", session.ID),
			slog.Bool("expired", session.Expired(now)))
		sendError(h.logger, w, msgUnauthorized, http.StatusUnauthorized)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(h.logger, w, msgUnauthorized, http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, msgInternal, http.StatusInternalServerError)
		return
	}

	session.ExpiresAt = now.Add(h.jwtConfig.ttl())
	if err := h.sessionStorage.ExtendSession(ctx, session.ID, session.ExpiresAt); err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			// Сессию удалили между чтением и продлением (logout в параллельном запросе)
			sendError(h.logger, w, msgUnauthorized, http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to extend session", slog.Any("error", err))
		sendError(h.logger, w, msgInternal, http.StatusInternalServerError)
		return
	}

	token, err := GenerateSessionToken(h.jwtConfig, user, session)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate session token", slog.Any("error", err))
		sendError(h.logger, w, msgInternal, http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.SessionResponse{
		Success:   true,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      toAPIUser(user.ID, user.Name, user.Email),
	}, http.StatusOK)
}

// Logout обрабатывает POST /api/auth/logout
// Удаляет только текущую сессию; повторный logout тоже 204
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		sendError(h.logger, w, msgUnauthorized, http.StatusUnauthorized)
		return
	}

	err := h.sessionStorage.DeleteSession(ctx, claims.ID)
	if err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
		h.logger.ErrorContext(ctx, "failed to delete session", slog.Any("error", err))
		sendError(h.logger, w, msgInternal, http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged out",
		slog.String("user_id", claims.UserID),
		slog.String("session_id", claims.ID),
		slog.Bool("already_revoked", err != nil))

	w.WriteHeader(http.StatusNoContent)
}

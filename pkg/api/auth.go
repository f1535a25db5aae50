package api

import "time"

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Name     string `json:"name"`     // отображаемое имя
	Email    string `json:"email"`    // email, он же логин
	Password string `json:"password"` // пароль в открытом виде, хешируется на сервере
}

// RegisterResponse представляет ответ на успешную регистрацию
type RegisterResponse struct {
	User    *UserInfo `json:"user,omitempty"`
	Success bool      `json:"success"`
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse возвращается при входе и при чтении сессии
// Token каждый раз выпускается заново: срок жизни сессии скользящий
type SessionResponse struct {
	ExpiresAt time.Time `json:"expires_at"` // когда истечет сессия, если ее не читать
	Token     string    `json:"token"`      // JWT для заголовка Authorization: Bearer
	User      UserInfo  `json:"user"`
	Success   bool      `json:"success"`
}

// UserInfo публичные данные пользователя
type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"` // описание ошибки для пользователя
	Success bool   `json:"success"`
}

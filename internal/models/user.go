package models

import "time"

// User представляет зарегистрированного пользователя
type User struct {
	CreatedAt    time.Time  `json:"created_at"`           // время регистрации
	LastLogin    *time.Time `json:"last_login,omitempty"` // время последнего входа
	ID           string     `json:"id"`                   // UUID пользователя
	Name         string     `json:"name"`                 // отображаемое имя
	Email        string     `json:"email"`                // уникальный email (lower-case)
	PasswordHash string     `json:"-"`                    // bcrypt хеш, наружу не отдаем
}

// Info возвращает публичное представление пользователя без хеша пароля
func (u *User) Info() UserInfo {
	return UserInfo{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// UserInfo публичные данные пользователя, которые видит клиент
type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session представляет серверную сессию пользователя
// Сессия живет в скользящем окне: каждое чтение сессии продлевает ExpiresAt
type Session struct {
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	ID        string    `json:"id"`      // UUID сессии, он же jti в JWT
	UserID    string    `json:"user_id"` // ID владельца
}

// Expired проверяет, истекла ли сессия на момент now
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

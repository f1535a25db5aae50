package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized сервер отклонил учетные данные или токен (401)
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict ресурс уже существует (409)
	ErrConflict = errors.New("conflict")
)

// StatusError ответ сервера с кодом вне 2xx
type StatusError struct {
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error (%d)", e.StatusCode)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// Is сопоставляет код ответа с sentinel ошибками пакета
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	}
	return false
}

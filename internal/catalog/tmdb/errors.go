package tmdb

import (
	"errors"
	"fmt"
)

var (
	// ErrFetch сетевая ошибка или не-2xx ответ каталога
	ErrFetch = errors.New("catalog fetch failed")
	// ErrParse тело ответа не удалось декодировать
	ErrParse = errors.New("catalog response parse failed")
)

// FetchError подробности неудачного запроса к каталогу
// StatusCode равен 0, если ответа не было вовсе
type FetchError struct {
	Err        error
	Op         string
	StatusCode int
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s: status %d", ErrFetch, e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s: %v", ErrFetch, e.Op, e.Err)
}

// Unwrap возвращает транспортную ошибку
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is позволяет матчить errors.Is(err, ErrFetch)
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

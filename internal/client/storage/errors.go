package storage

import "errors"

// Common client storage errors
var (
	// ErrAuthNotFound indicates that no authentication data exists
	ErrAuthNotFound = errors.New("authentication data not found")

	// ErrFavoritesNotFound indicates that user has no persisted favorites
	ErrFavoritesNotFound = errors.New("favorites not found")

	// ErrPreferenceNotFound indicates that preference key is not set
	ErrPreferenceNotFound = errors.New("preference not found")

	// ErrEmptyUserID indicates that favorites key is empty
	ErrEmptyUserID = errors.New("user id is empty")
)

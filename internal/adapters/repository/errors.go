package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrEventNotFound       = errors.New("event not found")
	ErrPreferencesNotFound = errors.New("preferences not found")
	ErrMissingID           = errors.New("record id must not be empty")
)

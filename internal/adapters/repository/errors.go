package repository

import "errors"

// Sentinel kinds for registry errors.
var (
	ErrNotFound          = errors.New("activity not found")
	ErrAlreadyRegistered = errors.New("participant already signed up")
	ErrNotRegistered     = errors.New("participant not signed up")
	ErrInvalidCatalog    = errors.New("invalid activity catalog")
)

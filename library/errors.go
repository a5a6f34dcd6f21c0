package library

import "errors"

var (
	// ErrProfileNotFound is returned when no profile has the requested id
	ErrProfileNotFound = errors.New("profile not found")
	// ErrEmptyName is returned when a profile or title name is blank
	ErrEmptyName = errors.New("name must not be empty")
	// ErrInvalidMovie is returned when a watchlist entry has no id
	ErrInvalidMovie = errors.New("movie id is required")
)

package tmdb

import "errors"

// Common errors returned by the TMDB client.
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid tmdb configuration")

	// ErrInvalidID indicates a non-positive movie id
	ErrInvalidID = errors.New("invalid movie id")
)

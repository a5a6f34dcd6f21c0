package youtube

import "errors"

var (
	// ErrInvalidConfig is returned when the client is missing required settings
	ErrInvalidConfig = errors.New("invalid youtube configuration")
	// ErrNoTrailer is returned when a trailer search has no embeddable hit
	ErrNoTrailer = errors.New("no trailer found")
)

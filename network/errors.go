package network

import (
	"errors"
	"fmt"
)

// Kind classifies a failed fetch
type Kind int

const (
	// KindUnknown is the zero value and never produced by this package
	KindUnknown Kind = iota
	// KindBadURL indicates the URL could not be turned into a request
	KindBadURL
	// KindNoData indicates a successful response without a usable body
	KindNoData
	// KindDecoding indicates the body could not be decoded into the target type
	KindDecoding
	// KindNetwork indicates a transport-level failure (DNS, connect, timeout)
	KindNetwork
	// KindInvalidResponse indicates a non-2xx HTTP status
	KindInvalidResponse
)

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case KindBadURL:
		return "BAD_URL"
	case KindNoData:
		return "NO_DATA"
	case KindDecoding:
		return "DECODING_ERROR"
	case KindNetwork:
		return "NETWORK_ERROR"
	case KindInvalidResponse:
		return "INVALID_RESPONSE"
	default:
		return "UNKNOWN"
	}
}

// Sentinel errors for use with errors.Is. Matching is by Kind only.
var (
	ErrBadURL          = &Error{Kind: KindBadURL}
	ErrNoData          = &Error{Kind: KindNoData}
	ErrDecoding        = &Error{Kind: KindDecoding}
	ErrNetwork         = &Error{Kind: KindNetwork}
	ErrInvalidResponse = &Error{Kind: KindInvalidResponse}
)

// Error is the typed failure surfaced by the fetch pipeline. Values are
// built once by the constructors below and never mutated.
type Error struct {
	Kind       Kind
	Message    string // set for KindNetwork
	StatusCode int    // set for KindInvalidResponse
}

// BadURL returns a KindBadURL error
func BadURL(detail string) *Error {
	return &Error{Kind: KindBadURL, Message: detail}
}

// NoData returns a KindNoData error
func NoData() *Error {
	return &Error{Kind: KindNoData}
}

// DecodingError returns a KindDecoding error
func DecodingError() *Error {
	return &Error{Kind: KindDecoding}
}

// NetworkError returns a KindNetwork error carrying the transport message
func NetworkError(message string) *Error {
	return &Error{Kind: KindNetwork, Message: message}
}

// InvalidResponse returns a KindInvalidResponse error for the given status
func InvalidResponse(statusCode int) *Error {
	return &Error{Kind: KindInvalidResponse, StatusCode: statusCode}
}

// Error implements the error interface
func (e *Error) Error() string {
	switch e.Kind {
	case KindBadURL:
		if e.Message != "" {
			return fmt.Sprintf("bad url: %s", e.Message)
		}
		return "bad url"
	case KindNoData:
		return "no data received"
	case KindDecoding:
		return "failed to decode response"
	case KindNetwork:
		return fmt.Sprintf("network error: %s", e.Message)
	case KindInvalidResponse:
		return fmt.Sprintf("invalid response: status %d", e.StatusCode)
	default:
		return "unknown fetch error"
	}
}

// Is reports whether target is an *Error of the same Kind
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// IsServerError checks if the error is an HTTP 5xx response
func (e *Error) IsServerError() bool {
	return e.Kind == KindInvalidResponse && e.StatusCode >= 500 && e.StatusCode <= 599
}

// IsNotFound checks if the error is an HTTP 404 response
func (e *Error) IsNotFound() bool {
	return e.Kind == KindInvalidResponse && e.StatusCode == 404
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *Error) IsUnauthorized() bool {
	return e.Kind == KindInvalidResponse && (e.StatusCode == 401 || e.StatusCode == 403)
}

// Retryable reports whether another attempt may succeed. Only network
// failures and 5xx responses qualify.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindNetwork:
		return true
	case KindInvalidResponse:
		return e.IsServerError()
	case KindBadURL, KindNoData, KindDecoding:
		return false
	default:
		return false
	}
}

// Outcome is the result of one fetch: either a body or an error, never both.
type Outcome struct {
	Body []byte
	Err  *Error
}

// Success wraps a response body
func Success(body []byte) Outcome {
	return Outcome{Body: body}
}

// Failure wraps a typed error
func Failure(err *Error) Outcome {
	return Outcome{Err: err}
}

// OK reports whether the outcome is a success
func (o Outcome) OK() bool {
	return o.Err == nil
}

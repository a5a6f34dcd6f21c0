package network

import (
	"net/http"
	"time"
)

const (
	// DefaultMaxAttempts is the total number of attempts per chain
	DefaultMaxAttempts = 3
	// DefaultBackoff is the fixed delay between attempts
	DefaultBackoff = 2 * time.Second
	// DefaultRequestTimeout bounds the wait for the first response byte
	DefaultRequestTimeout = 30 * time.Second
	// DefaultResourceTimeout bounds a whole attempt
	DefaultResourceTimeout = 300 * time.Second
	// DefaultUserAgent is sent with every request
	DefaultUserAgent = "Mozilla/5.0 (compatible; marquee)"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	maxAttempts     int
	backoff         time.Duration
	requestTimeout  time.Duration
	resourceTimeout time.Duration
	userAgent       string
	httpClient      *http.Client
	transport       Transport
}

func defaultOptions() clientOptions {
	return clientOptions{
		maxAttempts:     DefaultMaxAttempts,
		backoff:         DefaultBackoff,
		requestTimeout:  DefaultRequestTimeout,
		resourceTimeout: DefaultResourceTimeout,
		userAgent:       DefaultUserAgent,
	}
}

// WithMaxAttempts sets the total number of attempts per chain.
func WithMaxAttempts(attempts int) Option {
	return func(o *clientOptions) {
		if attempts > 0 {
			o.maxAttempts = attempts
		}
	}
}

// WithBackoff sets the delay between attempts.
func WithBackoff(delay time.Duration) Option {
	return func(o *clientOptions) {
		if delay >= 0 {
			o.backoff = delay
		}
	}
}

// WithRequestTimeout sets the time allowed until response headers arrive.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.requestTimeout = timeout
		}
	}
}

// WithResourceTimeout sets the total time allowed for one attempt.
func WithResourceTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.resourceTimeout = timeout
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// WithHTTPClient replaces the underlying http.Client. Timeouts configured
// on the supplied client are used as-is.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithTransport replaces the HTTP transport entirely. Used by tests and by
// callers that need a different wire.
func WithTransport(t Transport) Option {
	return func(o *clientOptions) {
		o.transport = t
	}
}

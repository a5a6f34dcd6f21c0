package network

import (
	"context"

	"github.com/rs/zerolog"
)

// Client composes the retry coordinator and the decoder. Feature fetchers
// reach the network only through FetchResource on a Client.
type Client struct {
	coordinator *Coordinator
	logger      zerolog.Logger
}

// NewClient creates a new fetch client
func NewClient(logger zerolog.Logger, opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	transport := o.transport
	if transport == nil {
		if o.httpClient != nil {
			transport = newHTTPTransportWithClient(o.httpClient, o.userAgent, logger)
		} else {
			transport = NewHTTPTransport(o.requestTimeout, o.resourceTimeout, o.userAgent, logger)
		}
	}

	return &Client{
		coordinator: NewCoordinator(transport, o.maxAttempts, o.backoff, logger),
		logger:      logger,
	}
}

// Fetch returns the raw outcome for rawURL after dedup and retries
func (c *Client) Fetch(ctx context.Context, rawURL string) Outcome {
	return c.coordinator.Fetch(ctx, rawURL)
}

// InFlight returns the number of URLs with a chain currently running
func (c *Client) InFlight() int {
	return c.coordinator.InFlight()
}

// FetchResource fetches rawURL and decodes the body into T. The returned
// error is always a *Error; decode diagnostics are logged and collapsed
// into ErrDecoding.
func FetchResource[T any](ctx context.Context, c *Client, rawURL string) (T, error) {
	var zero T

	out := c.coordinator.Fetch(ctx, rawURL)
	if !out.OK() {
		return zero, out.Err
	}

	v, derr := Decode[T](out.Body)
	if derr != nil {
		c.logger.Error().
			Str("url", redactRaw(rawURL)).
			Stringer("reason", derr.Reason).
			Str("path", derr.Path).
			Str("detail", derr.Detail).
			Msg("Decoding error")
		return zero, DecodingError()
	}

	return v, nil
}

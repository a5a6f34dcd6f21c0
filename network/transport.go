package network

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// Transport issues a single GET and classifies the result. It never retries.
type Transport interface {
	Send(ctx context.Context, rawURL string) Outcome
}

// HTTPTransport is the net/http backed Transport
type HTTPTransport struct {
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

// NewHTTPTransport creates a transport with the given timeouts. A zero
// requestTimeout or resourceTimeout falls back to the package defaults.
func NewHTTPTransport(requestTimeout, resourceTimeout time.Duration, userAgent string, logger zerolog.Logger) *HTTPTransport {
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	if resourceTimeout <= 0 {
		resourceTimeout = DefaultResourceTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	dialer := &net.Dialer{
		Timeout:   requestTimeout,
		KeepAlive: 30 * time.Second,
	}

	return &HTTPTransport{
		httpClient: &http.Client{
			Timeout: resourceTimeout,
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           dialer.DialContext,
				TLSHandshakeTimeout:   requestTimeout,
				ResponseHeaderTimeout: requestTimeout,
				IdleConnTimeout:       90 * time.Second,
				MaxIdleConnsPerHost:   4,
			},
		},
		userAgent: userAgent,
		logger:    logger,
	}
}

// newHTTPTransportWithClient wraps a caller supplied http.Client
func newHTTPTransportWithClient(client *http.Client, userAgent string, logger zerolog.Logger) *HTTPTransport {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPTransport{
		httpClient: client,
		userAgent:  userAgent,
		logger:     logger,
	}
}

// Send performs the GET request and classifies its result
func (t *HTTPTransport) Send(ctx context.Context, rawURL string) Outcome {
	u, err := url.Parse(rawURL)
	if err != nil {
		return t.fail(rawURL, BadURL(err.Error()))
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return t.fail(rawURL, BadURL(fmt.Sprintf("unsupported url %q", rawURL)))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return t.fail(rawURL, BadURL(err.Error()))
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", t.userAgent)
	// Never serve from an intermediate cache
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return t.fail(rawURL, NetworkError(err.Error()))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return t.fail(rawURL, NetworkError(fmt.Sprintf("failed to read response body: %v", err)))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		t.logger.Debug().
			Int("status", resp.StatusCode).
			Str("body", truncate(body, 256)).
			Msg("Error response body")
		return t.fail(rawURL, InvalidResponse(resp.StatusCode))
	}

	if isEmptyPayload(body) {
		return t.fail(rawURL, NoData())
	}

	t.logger.Debug().
		Str("url", redact(u)).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Msg("Request succeeded")

	return Success(body)
}

func (t *HTTPTransport) fail(rawURL string, e *Error) Outcome {
	t.logger.Warn().
		Str("url", redactRaw(rawURL)).
		Stringer("kind", e.Kind).
		Err(e).
		Msg("Request failed")
	return Failure(e)
}

// isEmptyPayload treats blank bodies and bare {} or null documents as no data
func isEmptyPayload(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return true
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return true
	}
	if trimmed[0] == '{' && trimmed[len(trimmed)-1] == '}' {
		return len(bytes.TrimSpace(trimmed[1:len(trimmed)-1])) == 0
	}
	return false
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

var secretParams = []string{"api_key", "key", "apikey"}

// redact strips credentials from query strings before logging
func redact(u *url.URL) string {
	q := u.Query()
	changed := false
	for _, p := range secretParams {
		if q.Has(p) {
			q.Set(p, "REDACTED")
			changed = true
		}
	}
	if !changed {
		return u.String()
	}
	c := *u
	c.RawQuery = q.Encode()
	return c.String()
}

func redactRaw(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<unparseable>"
	}
	return redact(u)
}

package network

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// pendingRequest is the registry handle for one in-flight chain
type pendingRequest struct {
	done      chan struct{}
	outcome   Outcome
	listeners int
}

// retryState belongs to a single chain and is discarded when it ends. url is
// the caller's URL as given; the normalized form is only the registry key.
type retryState struct {
	url         string
	attempt     int
	maxAttempts int
	backoff     time.Duration
}

// Coordinator runs retry chains over a Transport and guarantees at most one
// chain per URL. Callers that ask for a URL already in flight are attached
// to the running chain and receive its outcome.
type Coordinator struct {
	transport   Transport
	maxAttempts int
	backoff     time.Duration
	logger      zerolog.Logger

	mu      sync.Mutex
	pending map[string]*pendingRequest
}

// NewCoordinator creates a coordinator. maxAttempts below 1 is treated as 1.
func NewCoordinator(transport Transport, maxAttempts int, backoff time.Duration, logger zerolog.Logger) *Coordinator {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if backoff < 0 {
		backoff = 0
	}
	return &Coordinator{
		transport:   transport,
		maxAttempts: maxAttempts,
		backoff:     backoff,
		logger:      logger,
		pending:     make(map[string]*pendingRequest),
	}
}

// Fetch returns the terminal outcome of the chain for rawURL, starting one
// if none is in flight.
//
// The chain is detached from ctx: if ctx ends first, this caller gets a
// network error while the chain keeps running for the remaining listeners.
func (c *Coordinator) Fetch(ctx context.Context, rawURL string) Outcome {
	key := normalizeURL(rawURL)

	c.mu.Lock()
	if p, ok := c.pending[key]; ok {
		p.listeners++
		listeners := p.listeners
		c.mu.Unlock()

		c.logger.Debug().
			Str("url", redactRaw(key)).
			Int("listeners", listeners).
			Msg("Request already in progress, attaching to existing chain")
		return c.wait(ctx, p)
	}

	p := &pendingRequest{
		done:      make(chan struct{}),
		listeners: 1,
	}
	c.pending[key] = p
	c.mu.Unlock()

	go c.run(context.WithoutCancel(ctx), key, strings.TrimSpace(rawURL), p)

	return c.wait(ctx, p)
}

// InFlight returns the number of chains currently registered
func (c *Coordinator) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// IsInFlight reports whether a chain for rawURL is registered
func (c *Coordinator) IsInFlight(rawURL string) bool {
	key := normalizeURL(rawURL)

	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[key]
	return ok
}

func (c *Coordinator) wait(ctx context.Context, p *pendingRequest) Outcome {
	select {
	case <-p.done:
		return p.outcome
	case <-ctx.Done():
		return Failure(NetworkError(ctx.Err().Error()))
	}
}

// run executes the chain and always deregisters it, including on panic.
func (c *Coordinator) run(ctx context.Context, key, target string, p *pendingRequest) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error().
				Str("url", redactRaw(key)).
				Interface("panic", r).
				Msg("Request chain panicked")
			p.outcome = Failure(NetworkError(fmt.Sprintf("request chain panicked: %v", r)))
		}

		c.mu.Lock()
		delete(c.pending, key)
		c.mu.Unlock()

		close(p.done)
	}()

	p.outcome = c.retryLoop(ctx, retryState{
		url:         target,
		maxAttempts: c.maxAttempts,
		backoff:     c.backoff,
	})
}

func (c *Coordinator) retryLoop(ctx context.Context, state retryState) Outcome {
	for {
		c.logger.Debug().
			Str("url", redactRaw(state.url)).
			Int("attempt", state.attempt+1).
			Int("max_attempts", state.maxAttempts).
			Msg("Fetching")

		out := c.transport.Send(ctx, state.url)
		if out.OK() {
			return out
		}
		if !out.Err.Retryable() {
			return out
		}

		state.attempt++
		if state.attempt >= state.maxAttempts {
			c.logger.Warn().
				Str("url", redactRaw(state.url)).
				Int("attempts", state.attempt).
				Err(out.Err).
				Msg("Giving up after retries")
			return out
		}

		c.logger.Info().
			Str("url", redactRaw(state.url)).
			Dur("backoff", state.backoff).
			Int("next_attempt", state.attempt+1).
			Err(out.Err).
			Msg("Retrying request")

		timer := time.NewTimer(state.backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return Failure(NetworkError(ctx.Err().Error()))
		}
	}
}

// normalizeURL produces the registry key: lower-cased scheme and host,
// sorted query, no fragment. It is never sent. Unparseable input is
// returned trimmed.
func normalizeURL(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return trimmed
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	if u.RawQuery != "" {
		u.RawQuery = u.Query().Encode()
	}
	return u.String()
}

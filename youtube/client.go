package youtube

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/s0up4200/marquee/network"
)

const (
	// DefaultBaseURL is the YouTube Data API v3 root
	DefaultBaseURL = "https://www.googleapis.com/youtube/v3"
	// DefaultMaxResults caps a search page
	DefaultMaxResults = 20
)

// Client searches videos through the network pipeline
type Client struct {
	baseURL    string
	apiKey     string
	maxResults int
	fetcher    *network.Client
	logger     zerolog.Logger
}

// NewClient creates a new YouTube client. maxResults <= 0 selects
// DefaultMaxResults.
func NewClient(baseURL, apiKey string, maxResults int, fetcher *network.Client, logger zerolog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: api key is required", ErrInvalidConfig)
	}
	if fetcher == nil {
		return nil, fmt.Errorf("%w: network client is required", ErrInvalidConfig)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		maxResults: maxResults,
		fetcher:    fetcher,
		logger:     logger,
	}, nil
}

func (c *Client) searchURL(query string, maxResults int, embeddableOnly bool) string {
	params := url.Values{
		"part":       {"snippet"},
		"q":          {query},
		"type":       {"video"},
		"key":        {c.apiKey},
		"maxResults": {strconv.Itoa(maxResults)},
	}
	if embeddableOnly {
		params.Set("videoEmbeddable", "true")
		params.Set("videoSyndicated", "true")
	}
	return fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())
}

func (c *Client) search(ctx context.Context, query string, maxResults int, embeddableOnly bool) ([]Video, error) {
	resp, err := network.FetchResource[SearchResponse](ctx, c.fetcher, c.searchURL(query, maxResults, embeddableOnly))
	if err != nil {
		return nil, fmt.Errorf("failed to search videos for %q: %w", query, err)
	}

	videos := make([]Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		videos = append(videos, item.video())
	}

	c.logger.Debug().
		Str("query", query).
		Int("count", len(videos)).
		Msg("Retrieved videos")

	return videos, nil
}

// SearchVideos returns up to the configured number of videos matching
// query. An empty query returns no results without contacting the API.
func (c *Client) SearchVideos(ctx context.Context, query string) ([]Video, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Video{}, nil
	}
	return c.search(ctx, query, c.maxResults, false)
}

// FindTrailer returns the first embeddable trailer for a title
func (c *Client) FindTrailer(ctx context.Context, title string) (*Video, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrNoTrailer
	}

	videos, err := c.search(ctx, title+" official trailer", 1, true)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		c.logger.Info().Str("title", title).Msg("No trailer found")
		return nil, fmt.Errorf("%w for %q", ErrNoTrailer, title)
	}
	return &videos[0], nil
}

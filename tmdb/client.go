package tmdb

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
	// DefaultBaseURL is the TMDB v3 API root
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultImageBaseURL is the poster CDN prefix
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	// DefaultLanguage is sent with discover requests
	DefaultLanguage = "en-US"
)

// Client builds TMDB endpoint URLs and fetches them through the network
// pipeline
type Client struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	language     string
	fetcher      *network.Client
	logger       zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithImageBaseURL sets the poster CDN prefix
func WithImageBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.imageBaseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithLanguage sets the language used by discover
func WithLanguage(lang string) Option {
	return func(c *Client) {
		if lang != "" {
			c.language = lang
		}
	}
}

// NewClient creates a new TMDB client
func NewClient(baseURL, apiKey string, fetcher *network.Client, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: api key is required", ErrInvalidConfig)
	}
	if fetcher == nil {
		return nil, fmt.Errorf("%w: network client is required", ErrInvalidConfig)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		imageBaseURL: DefaultImageBaseURL,
		apiKey:       apiKey,
		language:     DefaultLanguage,
		fetcher:      fetcher,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// endpoint builds an absolute URL for path with the api key and params
func (c *Client) endpoint(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	return fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
}

func (c *Client) list(ctx context.Context, name, path string, params url.Values) ([]Movie, error) {
	c.logger.Debug().Str("list", name).Msg("Fetching titles")

	resp, err := network.FetchResource[MovieTitleResponse](ctx, c.fetcher, c.endpoint(path, params))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", name, err)
	}

	c.logger.Debug().Str("list", name).Int("count", len(resp.Results)).Msg("Retrieved titles")
	return resp.Results, nil
}

// TestConnection checks the API key against the configuration endpoint
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := network.FetchResource[ConfigurationResponse](ctx, c.fetcher, c.endpoint("/configuration", nil))
	if err != nil {
		return fmt.Errorf("failed to connect to TMDB: %w", err)
	}
	return nil
}

// Popular returns the popular movies list
func (c *Client) Popular(ctx context.Context) ([]Movie, error) {
	return c.list(ctx, "popular movies", "/movie/popular", nil)
}

// TrendingMovies returns today's trending movies
func (c *Client) TrendingMovies(ctx context.Context) ([]Movie, error) {
	return c.list(ctx, "trending movies", "/trending/movie/day", nil)
}

// TrendingTV returns today's trending TV shows
func (c *Client) TrendingTV(ctx context.Context) ([]Movie, error) {
	movies, err := c.list(ctx, "trending tv", "/trending/tv/day", nil)
	if err != nil {
		return nil, err
	}
	for i := range movies {
		if movies[i].MediaType == "" {
			movies[i].MediaType = MediaTypeTV
		}
	}
	return movies, nil
}

// Upcoming returns upcoming movies
func (c *Client) Upcoming(ctx context.Context) ([]Movie, error) {
	return c.list(ctx, "upcoming movies", "/movie/upcoming", nil)
}

// TopRated returns top rated movies
func (c *Client) TopRated(ctx context.Context) ([]Movie, error) {
	return c.list(ctx, "top rated movies", "/movie/top_rated", nil)
}

// NowPlaying returns the movies shown in the "new & hot" tab
func (c *Client) NowPlaying(ctx context.Context) ([]Movie, error) {
	return c.list(ctx, "now playing", "/movie/now_playing", nil)
}

// Discover returns popular streaming titles for the search landing page
func (c *Client) Discover(ctx context.Context) ([]Movie, error) {
	params := url.Values{
		"language":                      {c.language},
		"sort_by":                       {"popularity.desc"},
		"include_adult":                 {"false"},
		"include_video":                 {"false"},
		"page":                          {"1"},
		"with_watch_monetization_types": {"flatrate"},
	}
	return c.list(ctx, "discover", "/discover/movie", params)
}

// Search searches movies by title. An empty query returns no results
// without contacting the API.
func (c *Client) Search(ctx context.Context, query string) ([]Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Movie{}, nil
	}
	params := url.Values{"query": {strings.ToLower(query)}}
	return c.list(ctx, "search", "/search/movie", params)
}

// MovieDetails returns a single movie with detailed genres
func (c *Client) MovieDetails(ctx context.Context, movieID int) (*Movie, error) {
	if movieID <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidID, movieID)
	}

	movie, err := network.FetchResource[Movie](ctx, c.fetcher, c.endpoint("/movie/"+strconv.Itoa(movieID), nil))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch movie %d: %w", movieID, err)
	}
	return &movie, nil
}

// MovieCredits returns the cast of a movie
func (c *Client) MovieCredits(ctx context.Context, movieID int) ([]Cast, error) {
	if movieID <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidID, movieID)
	}

	path := fmt.Sprintf("/movie/%d/credits", movieID)
	resp, err := network.FetchResource[CreditsResponse](ctx, c.fetcher, c.endpoint(path, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch credits for movie %d: %w", movieID, err)
	}
	return resp.Cast, nil
}

// PosterURL returns the full poster URL for a poster path
func (c *Client) PosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return c.imageBaseURL + "/" + strings.TrimLeft(posterPath, "/")
}

// ConfigurationResponse is the subset of GET /configuration used to verify
// connectivity
type ConfigurationResponse struct {
	Images struct {
		SecureBaseURL string   `json:"secure_base_url"`
		PosterSizes   []string `json:"poster_sizes"`
	} `json:"images"`
}

package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/marquee/network"
)

func listBody(ids ...int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf(`{"id":%d,"title":"Movie %d","release_date":"2023-0%d-01","vote_average":7.5}`, id, id, (id%9)+1)
	}
	return `{"page":1,"results":[` + strings.Join(parts, ",") + `]}`
}

type fakeTMDB struct {
	mu     sync.Mutex
	paths  []string
	routes map[string]func(w http.ResponseWriter, r *http.Request)
}

func newFakeTMDB(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) (*fakeTMDB, *httptest.Server) {
	f := &fakeTMDB{routes: routes}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		f.mu.Lock()
		f.paths = append(f.paths, r.URL.Path)
		f.mu.Unlock()

		if h, ok := f.routes[r.URL.Path]; ok {
			h(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)
	return f, server
}

func body(s string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, s)
	}
}

func newTestClient(t *testing.T, baseURL string) *Client {
	fetcher := network.NewClient(zerolog.Nop(), network.WithBackoff(time.Millisecond))
	client, err := NewClient(baseURL, "test-key", fetcher, zerolog.Nop())
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	fetcher := network.NewClient(zerolog.Nop())

	_, err := NewClient("", "", fetcher, zerolog.Nop())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = NewClient("", "key", nil, zerolog.Nop())
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	client, err := NewClient("https://api.example.com/3/", "key", fetcher, zerolog.Nop(),
		WithLanguage("de-DE"), WithImageBaseURL("https://img.example.com/w342/"))
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/3", client.baseURL)
	assert.Equal(t, "de-DE", client.language)
	assert.Equal(t, "https://img.example.com/w342/abc.jpg", client.PosterURL("/abc.jpg"))
	assert.Equal(t, "", client.PosterURL(""))

	client, err = NewClient("", "key", fetcher, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}

func TestClient_Lists(t *testing.T) {
	tests := []struct {
		name string
		path string
		call func(*Client, context.Context) ([]Movie, error)
	}{
		{"popular", "/movie/popular", (*Client).Popular},
		{"trending movies", "/trending/movie/day", (*Client).TrendingMovies},
		{"upcoming", "/movie/upcoming", (*Client).Upcoming},
		{"top rated", "/movie/top_rated", (*Client).TopRated},
		{"now playing", "/movie/now_playing", (*Client).NowPlaying},
		{"discover", "/discover/movie", (*Client).Discover},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, server := newFakeTMDB(t, map[string]func(http.ResponseWriter, *http.Request){
				tt.path: body(listBody(1, 2, 3)),
			})
			client := newTestClient(t, server.URL)

			movies, err := tt.call(client, context.Background())
			require.NoError(t, err)
			require.Len(t, movies, 3)
			assert.Equal(t, "Movie 2", movies[1].DisplayTitle())
		})
	}
}

func TestClient_DiscoverParams(t *testing.T) {
	_, server := newFakeTMDB(t, map[string]func(http.ResponseWriter, *http.Request){
		"/discover/movie": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "en-US", q.Get("language"))
			assert.Equal(t, "popularity.desc", q.Get("sort_by"))
			assert.Equal(t, "false", q.Get("include_adult"))
			assert.Equal(t, "flatrate", q.Get("with_watch_monetization_types"))
			fmt.Fprint(w, listBody(1))
		},
	})

	_, err := newTestClient(t, server.URL).Discover(context.Background())
	require.NoError(t, err)
}

func TestClient_TrendingTVSetsMediaType(t *testing.T) {
	_, server := newFakeTMDB(t, map[string]func(http.ResponseWriter, *http.Request){
		"/trending/tv/day": body(`{"results":[{"id":9,"name":"Show","first_air_date":"2019-05-01"}]}`),
	})

	shows, err := newTestClient(t, server.URL).TrendingTV(context.Background())
	require.NoError(t, err)
	require.Len(t, shows, 1)
	assert.Equal(t, MediaTypeTV, shows[0].MediaType)
	assert.Equal(t, "Show", shows[0].DisplayTitle())
	assert.Equal(t, 2019, shows[0].Year())
}

func TestClient_Search(t *testing.T) {
	f, server := newFakeTMDB(t, map[string]func(http.ResponseWriter, *http.Request){
		"/search/movie": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "the matrix", r.URL.Query().Get("query"))
			fmt.Fprint(w, listBody(603))
		},
	})
	client := newTestClient(t, server.URL)

	movies, err := client.Search(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, movies)
	assert.Empty(t, f.paths, "blank query must not hit the API")

	movies, err = client.Search(context.Background(), "The Matrix")
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, 603, movies[0].ID)
}

func TestClient_MovieDetailsAndCredits(t *testing.T) {
	_, server := newFakeTMDB(t, map[string]func(http.ResponseWriter, *http.Request){
		"/movie/550": body(`{"id":550,"title":"Fight Club","runtime":139,"genres":[{"id":18,"name":"Drama"}]}`),
		"/movie/550/credits": body(`{"id":550,"cast":[{"id":819,"name":"Edward Norton","character":"Narrator"}]}`),
	})
	client := newTestClient(t, server.URL)

	movie, err := client.MovieDetails(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, "Fight Club", movie.Title)
	assert.Equal(t, []string{"Drama"}, movie.GenreNames())
	assert.True(t, movie.HasGenre("drama"))
	assert.True(t, movie.HasGenre("18"))

	cast, err := client.MovieCredits(context.Background(), 550)
	require.NoError(t, err)
	require.Len(t, cast, 1)
	assert.Equal(t, "Narrator", cast[0].Character)

	_, err = client.MovieDetails(context.Background(), 0)
	assert.True(t, errors.Is(err, ErrInvalidID))
	_, err = client.MovieCredits(context.Background(), -1)
	assert.True(t, errors.Is(err, ErrInvalidID))
}

func TestClient_ErrorsAreTyped(t *testing.T) {
	_, server := newFakeTMDB(t, map[string]func(http.ResponseWriter, *http.Request){
		"/movie/popular":   body(`{"results":[{"id":"abc","title":"wrong type"}]}`),
		"/movie/top_rated": body(`{}`),
	})
	client := newTestClient(t, server.URL)

	_, err := client.Popular(context.Background())
	assert.True(t, errors.Is(err, network.ErrDecoding))

	_, err = client.TopRated(context.Background())
	assert.True(t, errors.Is(err, network.ErrNoData))

	_, err = client.Upcoming(context.Background())
	var fetchErr *network.Error
	require.True(t, errors.As(err, &fetchErr))
	assert.True(t, fetchErr.IsNotFound())
}

func TestClient_TestConnection(t *testing.T) {
	_, server := newFakeTMDB(t, map[string]func(http.ResponseWriter, *http.Request){
		"/configuration": body(`{"images":{"secure_base_url":"https://image.tmdb.org/t/p/","poster_sizes":["w500"]}}`),
	})
	require.NoError(t, newTestClient(t, server.URL).TestConnection(context.Background()))
}

func TestMovie_Helpers(t *testing.T) {
	m := Movie{OriginalTitle: "Orig"}
	assert.Equal(t, "Orig", m.DisplayTitle())
	assert.Equal(t, 0, m.Year())

	m = Movie{}
	assert.Equal(t, "Untitled", m.DisplayTitle())

	m = Movie{ReleaseDate: "19xx"}
	assert.Equal(t, 0, m.Year())

	assert.True(t, MediaType("").IsMovie())
	assert.True(t, MediaTypeMovie.IsMovie())
	assert.False(t, MediaTypeTV.IsMovie())
}

func TestMovie_HasGenre(t *testing.T) {
	listed := Movie{GenreIDs: []int{28, 878}}
	assert.True(t, listed.HasGenre("Action"))
	assert.True(t, listed.HasGenre("science fiction"))
	assert.True(t, listed.HasGenre("878"))
	assert.False(t, listed.HasGenre("Drama"))
	assert.False(t, listed.HasGenre("not a genre"))

	detailed := Movie{Genres: []Genre{{ID: 99, Name: "Documentary"}}}
	assert.True(t, detailed.HasGenre("documentary"))
	assert.True(t, detailed.HasGenre("99"))

	id, ok := GenreID(" Horror ")
	assert.True(t, ok)
	assert.Equal(t, 27, id)
}

func TestClient_ListKeepsRowsWithoutID(t *testing.T) {
	_, server := newFakeTMDB(t, map[string]func(http.ResponseWriter, *http.Request){
		"/movie/popular": body(`{"results":[{"id":1},{"title":"no id"},{"id":3}]}`),
	})

	movies, err := newTestClient(t, server.URL).Popular(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 3)
	assert.Equal(t, 0, movies[1].ID)
	assert.Equal(t, "no id", movies[1].DisplayTitle())
	assert.Equal(t, 3, movies[2].ID)
}

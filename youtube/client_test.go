package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/marquee/network"
)

const twoVideos = `{
  "kind": "youtube#searchListResponse",
  "items": [
    {
      "id": {"kind": "youtube#video", "videoId": "abc123"},
      "snippet": {
        "title": "Dune: Part Two | Official Trailer",
        "channelTitle": "Warner Bros.",
        "publishedAt": "2023-05-03T13:00:00Z",
        "thumbnails": {"high": {"url": "https://i.ytimg.com/vi/abc123/hqdefault.jpg"}}
      }
    },
    {
      "id": {"kind": "youtube#video", "videoId": "def456"},
      "snippet": {"title": "Reaction", "thumbnails": {"default": {"url": "https://i.ytimg.com/def.jpg"}}}
    }
  ]
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func newTestClient(t *testing.T, baseURL string) *Client {
	fetcher := network.NewClient(zerolog.Nop(), network.WithBackoff(time.Millisecond))
	client, err := NewClient(baseURL, "yt-key", 0, fetcher, zerolog.Nop())
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	fetcher := network.NewClient(zerolog.Nop())

	_, err := NewClient("", "", 10, fetcher, zerolog.Nop())
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = NewClient("", "key", 10, nil, zerolog.Nop())
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	client, err := NewClient("", "key", 0, fetcher, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, DefaultMaxResults, client.maxResults)
}

func TestClient_SearchVideos(t *testing.T) {
	server, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "snippet", q.Get("part"))
		assert.Equal(t, "dune", q.Get("q"))
		assert.Equal(t, "video", q.Get("type"))
		assert.Equal(t, "yt-key", q.Get("key"))
		assert.Equal(t, "20", q.Get("maxResults"))
		assert.Empty(t, q.Get("videoEmbeddable"))
		fmt.Fprint(w, twoVideos)
	})
	client := newTestClient(t, server.URL)

	videos, err := client.SearchVideos(context.Background(), " dune ")
	require.NoError(t, err)
	require.Len(t, videos, 2)

	assert.Equal(t, "abc123", videos[0].ID)
	assert.Equal(t, "Warner Bros.", videos[0].ChannelTitle)
	assert.Equal(t, "https://i.ytimg.com/vi/abc123/hqdefault.jpg", videos[0].ThumbnailURL)
	assert.Equal(t, time.Date(2023, 5, 3, 13, 0, 0, 0, time.UTC), videos[0].PublishedAt.UTC())
	assert.Equal(t, "https://i.ytimg.com/def.jpg", videos[1].ThumbnailURL)

	empty, err := client.SearchVideos(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_FindTrailer(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantID    string
		wantErrIs error
	}{
		{
			name:   "first hit",
			status: http.StatusOK,
			body:   twoVideos,
			wantID: "abc123",
		},
		{
			name:      "no hits",
			status:    http.StatusOK,
			body:      `{"items":[]}`,
			wantErrIs: ErrNoTrailer,
		},
		{
			name:      "hit without video id",
			status:    http.StatusOK,
			body:      `{"items":[{"id":{"kind":"youtube#channel"},"snippet":{"title":"x"}}]}`,
			wantErrIs: network.ErrDecoding,
		},
		{
			name:      "quota exceeded",
			status:    http.StatusForbidden,
			body:      `{"error":{"code":403}}`,
			wantErrIs: network.ErrInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				assert.Equal(t, "Dune official trailer", q.Get("q"))
				assert.Equal(t, "true", q.Get("videoEmbeddable"))
				assert.Equal(t, "true", q.Get("videoSyndicated"))
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})
			client := newTestClient(t, server.URL)

			video, err := client.FindTrailer(context.Background(), "Dune")
			if tt.wantErrIs != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErrIs), "got %v", err)
				assert.Nil(t, video)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, video.ID)
		})
	}
}

func TestClient_FindTrailerBlankTitle(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")
	_, err := client.FindTrailer(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrNoTrailer)
}

func TestVideo_URLs(t *testing.T) {
	v := Video{ID: "abc123"}
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", v.WatchURL())
	assert.Equal(t, "https://www.youtube.com/embed/abc123", v.EmbedURL())
}

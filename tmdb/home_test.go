package tmdb

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Home(t *testing.T) {
	_, server := newFakeTMDB(t, map[string]func(http.ResponseWriter, *http.Request){
		"/trending/movie/day": body(listBody(1, 2)),
		"/movie/popular":      body(listBody(10, 11, 12, 13, 14, 15, 16)),
		"/trending/tv/day":    body(`{"results":[{"id":30,"name":"Show"}]}`),
		"/movie/top_rated":    body(listBody(40)),
		// upcoming is missing and returns 404
	})
	client := newTestClient(t, server.URL)

	feed, err := client.Home(context.Background())
	require.NoError(t, err)
	require.Len(t, feed.Sections, 5)

	wantOrder := []Section{SectionTrendingMovies, SectionPopular, SectionTrendingTV, SectionUpcoming, SectionTopRated}
	for i, s := range feed.Sections {
		assert.Equal(t, wantOrder[i], s.Section)
	}

	assert.Len(t, feed.Sections[0].Movies, 2)
	assert.Len(t, feed.Sections[1].Movies, 7)
	assert.Equal(t, MediaTypeTV, feed.Sections[2].Movies[0].MediaType)
	assert.Error(t, feed.Sections[3].Err)
	assert.Empty(t, feed.Sections[3].Movies)
	assert.NoError(t, feed.Sections[4].Err)

	require.Len(t, feed.Banner, BannerSize)
	popularIDs := map[int]bool{}
	for _, m := range feed.Sections[1].Movies {
		popularIDs[m.ID] = true
	}
	for _, m := range feed.Banner {
		assert.True(t, popularIDs[m.ID], "banner title %d must come from popular", m.ID)
	}
}

func TestClient_HomeCancelled(t *testing.T) {
	_, server := newFakeTMDB(t, nil)
	client := newTestClient(t, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Home(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPickBanner(t *testing.T) {
	movies := []Movie{{ID: 1}, {ID: 2}, {ID: 3}}
	reverse := func(n int, swap func(i, j int)) {
		for i := 0; i < n/2; i++ {
			swap(i, n-1-i)
		}
	}

	got := pickBanner(movies, 2, reverse)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].ID)
	assert.Equal(t, 2, got[1].ID)
	assert.Equal(t, 1, movies[0].ID, "input must not be reordered")

	assert.Len(t, pickBanner(movies, 5, reverse), 3)
	assert.Empty(t, pickBanner(nil, 5, reverse))
}

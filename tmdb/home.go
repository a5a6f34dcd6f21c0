package tmdb

import (
	"context"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
)

// BannerSize is the number of titles featured in the home banner
const BannerSize = 5

// sectionLoader fetches one home row
type sectionLoader struct {
	section Section
	load    func(context.Context) ([]Movie, error)
}

func (c *Client) homeLoaders() []sectionLoader {
	return []sectionLoader{
		{SectionTrendingMovies, c.TrendingMovies},
		{SectionPopular, c.Popular},
		{SectionTrendingTV, c.TrendingTV},
		{SectionUpcoming, c.Upcoming},
		{SectionTopRated, c.TopRated},
	}
}

// Home loads every home row concurrently. A row that fails keeps its error
// and an empty list so the caller can render an empty state; Home itself
// only fails when ctx is done.
func (c *Client) Home(ctx context.Context) (*HomeFeed, error) {
	loaders := c.homeLoaders()
	sections := make([]HomeSection, len(loaders))

	g, gctx := errgroup.WithContext(ctx)
	for i, l := range loaders {
		sections[i].Section = l.section
		g.Go(func() error {
			movies, err := l.load(gctx)
			if err != nil {
				c.logger.Warn().
					Err(err).
					Str("section", string(l.section)).
					Msg("Failed to load home section")
				sections[i].Err = err
				return nil
			}
			sections[i].Movies = movies
			return nil
		})
	}

	// Loaders never return errors
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	feed := &HomeFeed{Sections: sections}
	for _, s := range sections {
		if s.Section == SectionPopular {
			feed.Banner = pickBanner(s.Movies, BannerSize, rand.Shuffle)
		}
	}
	return feed, nil
}

// pickBanner returns up to n titles from movies in shuffled order without
// modifying movies
func pickBanner(movies []Movie, n int, shuffle func(int, func(i, j int))) []Movie {
	picked := make([]Movie, len(movies))
	copy(picked, movies)
	shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	if len(picked) > n {
		picked = picked[:n]
	}
	return picked
}

package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/filter"
	"github.com/s0up4200/marquee/tmdb"
)

// homeCmd represents the home command
var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show the home feed",
	Long: `Show the featured banner followed by the trending, popular, trending TV,
upcoming and top rated rows, plus your list.

Rows can be narrowed with a filter expression:
  marquee home --filter 'VoteAverage >= 7.5 and hasGenre("Action")'
  marquee home --preset acclaimed`,
	Args: cobra.NoArgs,
	RunE: runHome,
}

// newCmd represents the new & hot command
var newCmd = &cobra.Command{
	Use:     "new",
	Aliases: []string{"hot"},
	Short:   "Show new & hot titles now in theatres",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, "New & Hot", tmdbClient.NowPlaying)
	},
}

// discoverCmd represents the discover command
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Show popular titles on streaming services",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, "Top Searches", tmdbClient.Discover)
	},
}

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search movies by title",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

// titleCmd represents the title command
var titleCmd = &cobra.Command{
	Use:   "title <id>",
	Short: "Show details and cast for a movie",
	Args:  cobra.ExactArgs(1),
	RunE:  runTitle,
}

func init() {
	for _, c := range []*cobra.Command{homeCmd, newCmd, discoverCmd, searchCmd} {
		c.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
		c.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	}

	rootCmd.AddCommand(homeCmd, newCmd, discoverCmd, searchCmd, titleCmd)
}

func listOptions(cmd *cobra.Command) tmdb.FormatOptions {
	ctx := cmd.Context()
	return tmdb.FormatOptions{
		ShowDetails:  showDetails,
		ShowOverview: showDetails,
		Marked: func(m tmdb.Movie) bool {
			saved, err := store.InWatchlist(ctx, m.ID)
			return err == nil && saved
		},
	}
}

func applyFilter(f *filter.Filter, movies []tmdb.Movie) []tmdb.Movie {
	if f == nil {
		return movies
	}
	return f.Apply(movies)
}

func runHome(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := requireTMDB(); err != nil {
		return err
	}

	f, err := resolveFilter()
	if err != nil {
		return err
	}

	if profile, err := store.SelectedProfile(ctx); err == nil {
		fmt.Printf("Watching as %s\n", profile.Name)
	}

	feed, err := tmdbClient.Home(ctx)
	if err != nil {
		fmt.Println(userMessage(err))
		return nil
	}

	opts := listOptions(cmd)

	if banner := applyFilter(f, feed.Banner); len(banner) > 0 {
		fmt.Print(formatter.FormatMovieList("Featured", banner, tmdb.FormatOptions{
			ShowDetails:  true,
			ShowOverview: true,
			Marked:       opts.Marked,
		}))
	}

	for _, section := range feed.Sections {
		heading := sectionHeading(section.Section)
		if section.Err != nil {
			fmt.Printf("\n%s: %s\n", heading, userMessage(section.Err))
			continue
		}
		fmt.Print(formatter.FormatMovieList(heading, applyFilter(f, section.Movies), opts))
	}

	saved, err := store.Watchlist(ctx)
	if err != nil {
		return err
	}
	fmt.Print(formatter.FormatMovieList(sectionHeading(tmdb.SectionMyList), applyFilter(f, saved), opts))

	return nil
}

func sectionHeading(s tmdb.Section) string {
	switch s {
	case tmdb.SectionTrendingMovies:
		return "Trending Movies"
	case tmdb.SectionPopular:
		return "Popular"
	case tmdb.SectionTrendingTV:
		return "Trending TV"
	case tmdb.SectionUpcoming:
		return "Upcoming Movies"
	case tmdb.SectionTopRated:
		return "Top Rated"
	case tmdb.SectionMyList:
		return "My List"
	default:
		return string(s)
	}
}

func runList(cmd *cobra.Command, heading string, load func(context.Context) ([]tmdb.Movie, error)) error {
	if err := requireTMDB(); err != nil {
		return err
	}

	f, err := resolveFilter()
	if err != nil {
		return err
	}

	movies, err := load(cmd.Context())
	if err != nil {
		fmt.Printf("\n%s: %s\n", heading, userMessage(err))
		return nil
	}

	fmt.Print(formatter.FormatMovieList(heading, applyFilter(f, movies), listOptions(cmd)))
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	logger.Info().Str("query", query).Msg("Searching titles")

	return runList(cmd, fmt.Sprintf("Results for %q", query), func(ctx context.Context) ([]tmdb.Movie, error) {
		return tmdbClient.Search(ctx, query)
	})
}

func runTitle(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := requireTMDB(); err != nil {
		return err
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid movie id %q", args[0])
	}

	movie, err := tmdbClient.MovieDetails(ctx, id)
	if err != nil {
		fmt.Println(userMessage(err))
		return nil
	}

	cast, err := tmdbClient.MovieCredits(ctx, id)
	if err != nil {
		logger.Warn().Err(err).Int("id", id).Msg("Failed to load cast")
	}

	fmt.Print(formatter.FormatDetails(*movie, cast))

	saved, err := store.InWatchlist(ctx, movie.ID)
	if err == nil && saved {
		fmt.Println("\n✓ In My List")
	}
	if liked, err := store.IsLiked(ctx, movie.DisplayTitle()); err == nil && liked {
		fmt.Println("♥ Liked")
	}
	return nil
}

package tmdb

import (
	"fmt"
	"strings"
)

// FormatOptions contains options for formatting output
type FormatOptions struct {
	ShowDetails  bool
	ShowOverview bool
	Marked       func(Movie) bool // titles flagged with a check mark, e.g. on the watchlist
}

// ConsoleFormatter provides console output formatting for titles
type ConsoleFormatter struct {
	client *Client
}

// NewConsoleFormatter creates a new console formatter. client may be nil,
// in which case poster URLs are omitted.
func NewConsoleFormatter(client *Client) *ConsoleFormatter {
	return &ConsoleFormatter{client: client}
}

// FormatMovieList formats a list of titles under a heading
func (f *ConsoleFormatter) FormatMovieList(heading string, movies []Movie, options FormatOptions) string {
	if len(movies) == 0 {
		return fmt.Sprintf("\n%s: nothing to show\n", heading)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (%d):\n\n", heading, len(movies))

	for i, movie := range movies {
		isLast := i == len(movies)-1
		f.formatMovie(&sb, movie, isLast, options)
	}

	return sb.String()
}

func (f *ConsoleFormatter) formatMovie(sb *strings.Builder, movie Movie, isLast bool, options FormatOptions) {
	prefix := "├"
	indent := "│   "
	if isLast {
		prefix = "╰"
		indent = "    "
	}

	title := movie.DisplayTitle()
	if year := movie.Year(); year > 0 {
		title = fmt.Sprintf("%s (%d)", title, year)
	}
	mark := ""
	if options.Marked != nil && options.Marked(movie) {
		mark = " ✓"
	}
	fmt.Fprintf(sb, "%s── %s%s  [id %d]\n", prefix, title, mark, movie.ID)

	if !options.ShowDetails {
		return
	}

	var parts []string
	if movie.VoteAverage > 0 {
		parts = append(parts, fmt.Sprintf("Rating: %.1f (%d votes)", movie.VoteAverage, movie.VoteCount))
	}
	if movie.MediaType != "" {
		parts = append(parts, fmt.Sprintf("Type: %s", movie.MediaType))
	}
	if movie.OriginalLanguage != "" {
		parts = append(parts, fmt.Sprintf("Lang: %s", movie.OriginalLanguage))
	}
	if len(parts) > 0 {
		fmt.Fprintf(sb, "%s%s\n", indent, strings.Join(parts, " | "))
	}

	if options.ShowOverview && movie.Overview != "" {
		fmt.Fprintf(sb, "%s%s\n", indent, truncate(movie.Overview, 160))
	}
}

// FormatDetails formats a single title with its cast
func (f *ConsoleFormatter) FormatDetails(movie Movie, cast []Cast) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n%s", movie.DisplayTitle())
	if year := movie.Year(); year > 0 {
		fmt.Fprintf(&sb, " (%d)", year)
	}
	sb.WriteString("\n")
	if movie.Tagline != "" {
		fmt.Fprintf(&sb, "  %q\n", movie.Tagline)
	}
	sb.WriteString("\n")

	if genres := movie.GenreNames(); len(genres) > 0 {
		fmt.Fprintf(&sb, "Genres:   %s\n", strings.Join(genres, ", "))
	}
	if movie.Runtime > 0 {
		fmt.Fprintf(&sb, "Runtime:  %dh %02dm\n", movie.Runtime/60, movie.Runtime%60)
	}
	if movie.VoteAverage > 0 {
		fmt.Fprintf(&sb, "Rating:   %.1f/10 (%d votes)\n", movie.VoteAverage, movie.VoteCount)
	}
	if released := movie.Released(); released != "" {
		fmt.Fprintf(&sb, "Released: %s\n", released)
	}
	if f.client != nil && movie.PosterPath != "" {
		fmt.Fprintf(&sb, "Poster:   %s\n", f.client.PosterURL(movie.PosterPath))
	}
	if movie.Overview != "" {
		fmt.Fprintf(&sb, "\n%s\n", movie.Overview)
	}

	if len(cast) > 0 {
		sb.WriteString("\nCast:\n")
		limit := min(len(cast), 10)
		for _, member := range cast[:limit] {
			if member.Character != "" {
				fmt.Fprintf(&sb, "  • %s as %s\n", member.Name, member.Character)
			} else {
				fmt.Fprintf(&sb, "  • %s\n", member.Name)
			}
		}
		if len(cast) > limit {
			fmt.Fprintf(&sb, "  … and %d more\n", len(cast)-limit)
		}
	}

	return sb.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

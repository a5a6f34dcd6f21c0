package tmdb

import (
	"strconv"
	"strings"
)

// MediaType represents the type of media
type MediaType string

const (
	// MediaTypeMovie represents a movie
	MediaTypeMovie MediaType = "movie"
	// MediaTypeTV represents a TV show
	MediaTypeTV MediaType = "tv"
)

// IsMovie checks if the media type is a movie. Untyped entries from the
// movie endpoints count as movies.
func (mt MediaType) IsMovie() bool {
	return mt == MediaTypeMovie || mt == ""
}

// MovieTitleResponse is the list envelope returned by the browse and
// search endpoints
type MovieTitleResponse struct {
	Page         int     `json:"page,omitempty"`
	Results      []Movie `json:"results" validate:"required,dive"`
	TotalPages   int     `json:"total_pages,omitempty"`
	TotalResults int     `json:"total_results,omitempty"`
}

// Movie is a movie or TV title as returned by list and detail endpoints.
// ID may be zero; callers that key on it check it themselves.
type Movie struct {
	ID               int       `json:"id,omitempty"`
	Title            string    `json:"title,omitempty"`
	Name             string    `json:"name,omitempty"`
	OriginalTitle    string    `json:"original_title,omitempty"`
	OriginalLanguage string    `json:"original_language,omitempty"`
	Overview         string    `json:"overview,omitempty"`
	PosterPath       string    `json:"poster_path,omitempty"`
	BackdropPath     string    `json:"backdrop_path,omitempty"`
	ReleaseDate      string    `json:"release_date,omitempty"`
	FirstAirDate     string    `json:"first_air_date,omitempty"`
	Video            bool      `json:"video,omitempty"`
	Adult            bool      `json:"adult,omitempty"`
	VoteAverage      float64   `json:"vote_average,omitempty"`
	VoteCount        int       `json:"vote_count,omitempty"`
	Popularity       float64   `json:"popularity,omitempty"`
	MediaType        MediaType `json:"media_type,omitempty"`
	Genres           []Genre   `json:"genres,omitempty"`
	GenreIDs         []int     `json:"genre_ids,omitempty"`
	Runtime          int       `json:"runtime,omitempty"`
	Tagline          string    `json:"tagline,omitempty"`
	Cast             []Cast    `json:"cast,omitempty"`
}

// DisplayTitle returns the best available title for the entry
func (m *Movie) DisplayTitle() string {
	switch {
	case m.Title != "":
		return m.Title
	case m.Name != "":
		return m.Name
	case m.OriginalTitle != "":
		return m.OriginalTitle
	default:
		return "Untitled"
	}
}

// Released returns the release date for movies or the first air date for TV
func (m *Movie) Released() string {
	if m.ReleaseDate != "" {
		return m.ReleaseDate
	}
	return m.FirstAirDate
}

// Year returns the release year, or 0 when unknown
func (m *Movie) Year() int {
	date := m.Released()
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// GenreNames returns the names of the detailed genres
func (m *Movie) GenreNames() []string {
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	return names
}

// HasGenre checks the genre id list and the detailed genres. Names are
// matched case-insensitively and resolved to ids for list results.
func (m *Movie) HasGenre(idOrName string) bool {
	id, err := strconv.Atoi(idOrName)
	if err != nil {
		for _, g := range m.Genres {
			if strings.EqualFold(g.Name, idOrName) {
				return true
			}
		}
		var known bool
		if id, known = GenreID(idOrName); !known {
			return false
		}
	}
	return m.hasGenreID(id)
}

func (m *Movie) hasGenreID(id int) bool {
	for _, g := range m.GenreIDs {
		if g == id {
			return true
		}
	}
	for _, g := range m.Genres {
		if g.ID == id {
			return true
		}
	}
	return false
}

// Genre represents a movie genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Cast is a single cast credit
type Cast struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character,omitempty"`
	ProfilePath string `json:"profile_path,omitempty"`
	Order       int    `json:"order,omitempty"`
}

// CreditsResponse is the response from GET /movie/{id}/credits
type CreditsResponse struct {
	ID   int    `json:"id,omitempty"`
	Cast []Cast `json:"cast" validate:"required"`
}

// Section identifies a home feed row
type Section string

const (
	SectionTrendingMovies Section = "trending movies"
	SectionPopular        Section = "popular"
	SectionTrendingTV     Section = "trending tv"
	SectionUpcoming       Section = "upcoming"
	SectionTopRated       Section = "top rated"
	SectionMyList         Section = "my list"
)

// HomeSection is one populated row of the home feed
type HomeSection struct {
	Section Section
	Movies  []Movie
	Err     error
}

// HomeFeed is the full home screen payload
type HomeFeed struct {
	Banner   []Movie
	Sections []HomeSection
}

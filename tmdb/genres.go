package tmdb

import "strings"

// movieGenres maps TMDB's fixed movie and TV genre names to ids. List
// endpoints only return genre_ids.
var movieGenres = map[string]int{
	"action":             28,
	"adventure":          12,
	"animation":          16,
	"comedy":             35,
	"crime":              80,
	"documentary":        99,
	"drama":              18,
	"family":             10751,
	"fantasy":            14,
	"history":            36,
	"horror":             27,
	"music":              10402,
	"mystery":            9648,
	"romance":            10749,
	"science fiction":    878,
	"tv movie":           10770,
	"thriller":           53,
	"war":                10752,
	"western":            37,
	"action & adventure": 10759,
	"kids":               10762,
	"sci-fi & fantasy":   10765,
}

// GenreID returns the TMDB id for a genre name, case-insensitively
func GenreID(name string) (int, bool) {
	id, ok := movieGenres[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

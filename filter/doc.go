// Package filter narrows title lists with expr-lang boolean expressions.
//
// An expression sees one title at a time:
//
//	VoteAverage >= 7.5 and Year >= 2020
//	hasGenre("Horror") and not Adult
//	contains(Title, "star") or releasedWithin(30)
//	MediaType == "tv" and Language == "ko"
//
// Fields: ID, Title, OriginalTitle, Overview, VoteAverage, VoteCount,
// Popularity, ReleaseDate, Released, Year, MediaType, IsMovie, Adult,
// Language, GenreIDs, Genres, Runtime.
//
// Helpers: contains, startsWith, endsWith, lower, upper, parseDate, now,
// daysAgo, hasGenre, releasedWithin, isUpcoming.
package filter

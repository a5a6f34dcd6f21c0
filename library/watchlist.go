package library

import (
	"context"

	"github.com/s0up4200/marquee/tmdb"
)

// userList is the persisted watchlist document
type userList struct {
	Movies []tmdb.Movie `json:"movies"`
}

func (s *Store) loadWatchlist(ctx context.Context) (userList, error) {
	list := userList{Movies: []tmdb.Movie{}}
	if _, err := s.getJSON(ctx, keySavedMovies, &list); err != nil {
		return userList{}, err
	}
	if list.Movies == nil {
		list.Movies = []tmdb.Movie{}
	}
	return list, nil
}

// Watchlist returns the saved titles in insertion order
func (s *Store) Watchlist(ctx context.Context) ([]tmdb.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.loadWatchlist(ctx)
	if err != nil {
		return nil, err
	}
	return list.Movies, nil
}

// InWatchlist reports whether a title with movieID is saved
func (s *Store) InWatchlist(ctx context.Context, movieID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.loadWatchlist(ctx)
	if err != nil {
		return false, err
	}
	return indexOfMovie(list.Movies, movieID) >= 0, nil
}

// AddToWatchlist saves movie unless a title with the same id is already
// saved. It reports whether the list changed.
func (s *Store) AddToWatchlist(ctx context.Context, movie tmdb.Movie) (bool, error) {
	if movie.ID <= 0 {
		return false, ErrInvalidMovie
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.loadWatchlist(ctx)
	if err != nil {
		return false, err
	}
	if indexOfMovie(list.Movies, movie.ID) >= 0 {
		return false, nil
	}

	list.Movies = append(list.Movies, movie)
	if err := s.putJSON(ctx, keySavedMovies, list); err != nil {
		return false, err
	}

	s.logger.Debug().Int("id", movie.ID).Str("title", movie.DisplayTitle()).Msg("Added to watchlist")
	return true, nil
}

// RemoveFromWatchlist removes every title with movieID. It reports whether
// the list changed.
func (s *Store) RemoveFromWatchlist(ctx context.Context, movieID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.loadWatchlist(ctx)
	if err != nil {
		return false, err
	}

	kept := list.Movies[:0]
	for _, m := range list.Movies {
		if m.ID != movieID {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(list.Movies) {
		return false, nil
	}

	list.Movies = kept
	if err := s.putJSON(ctx, keySavedMovies, list); err != nil {
		return false, err
	}

	s.logger.Debug().Int("id", movieID).Msg("Removed from watchlist")
	return true, nil
}

// ToggleWatchlist adds movie when absent and removes it when present. It
// returns whether the title is saved afterwards.
func (s *Store) ToggleWatchlist(ctx context.Context, movie tmdb.Movie) (bool, error) {
	if movie.ID <= 0 {
		return false, ErrInvalidMovie
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.loadWatchlist(ctx)
	if err != nil {
		return false, err
	}

	saved := true
	if i := indexOfMovie(list.Movies, movie.ID); i >= 0 {
		list.Movies = append(list.Movies[:i], list.Movies[i+1:]...)
		saved = false
	} else {
		list.Movies = append(list.Movies, movie)
	}

	if err := s.putJSON(ctx, keySavedMovies, list); err != nil {
		return false, err
	}
	return saved, nil
}

func indexOfMovie(movies []tmdb.Movie, id int) int {
	for i, m := range movies {
		if m.ID == id {
			return i
		}
	}
	return -1
}

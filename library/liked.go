package library

import (
	"context"
	"slices"
	"strings"
)

func (s *Store) loadLiked(ctx context.Context) ([]string, error) {
	liked := []string{}
	if _, err := s.getJSON(ctx, keyLikedMovies, &liked); err != nil {
		return nil, err
	}
	if liked == nil {
		liked = []string{}
	}
	return liked, nil
}

// Liked returns the liked titles in the order they were liked
func (s *Store) Liked(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLiked(ctx)
}

// IsLiked reports whether title is liked. Titles match exactly.
func (s *Store) IsLiked(ctx context.Context, title string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	liked, err := s.loadLiked(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(liked, title), nil
}

// Like adds title to the liked list if not already present
func (s *Store) Like(ctx context.Context, title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	liked, err := s.loadLiked(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(liked, title) {
		return nil
	}
	return s.putJSON(ctx, keyLikedMovies, append(liked, title))
}

// Unlike removes title from the liked list
func (s *Store) Unlike(ctx context.Context, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	liked, err := s.loadLiked(ctx)
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(liked, func(t string) bool { return t == title })
	return s.putJSON(ctx, keyLikedMovies, kept)
}

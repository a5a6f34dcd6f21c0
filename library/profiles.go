package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Profile is a viewer profile
type Profile struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	ImageName  string    `json:"imageName"`
	IsChildren bool      `json:"isChildren"`
}

// defaultProfiles is the roster created on first use
func defaultProfiles() []Profile {
	return []Profile{
		{ID: uuid.New(), Name: "Main", ImageName: "avatar-red", IsChildren: false},
		{ID: uuid.New(), Name: "Family", ImageName: "avatar-blue", IsChildren: false},
		{ID: uuid.New(), Name: "Extra", ImageName: "avatar-green", IsChildren: false},
		{ID: uuid.New(), Name: "Other", ImageName: "avatar-yellow", IsChildren: false},
		{ID: uuid.New(), Name: "Children", ImageName: "avatar-kids", IsChildren: true},
	}
}

// loadProfiles returns the stored profiles, seeding the defaults when none
// exist yet
func (s *Store) loadProfiles(ctx context.Context) ([]Profile, error) {
	var profiles []Profile
	found, err := s.getJSON(ctx, keyProfiles, &profiles)
	if err != nil {
		return nil, err
	}
	if found && len(profiles) > 0 {
		return profiles, nil
	}

	profiles = defaultProfiles()
	if err := s.putJSON(ctx, keyProfiles, profiles); err != nil {
		return nil, err
	}
	s.logger.Info().Int("count", len(profiles)).Msg("Created default profiles")
	return profiles, nil
}

// Profiles returns all profiles
func (s *Store) Profiles(ctx context.Context) ([]Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadProfiles(ctx)
}

// UpdateProfile replaces the editable fields of the profile with id
func (s *Store) UpdateProfile(ctx context.Context, id uuid.UUID, name, imageName string, isChildren bool) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := s.loadProfiles(ctx)
	if err != nil {
		return nil, err
	}

	for i := range profiles {
		if profiles[i].ID != id {
			continue
		}
		profiles[i].Name = name
		if imageName != "" {
			profiles[i].ImageName = imageName
		}
		profiles[i].IsChildren = isChildren

		if err := s.putJSON(ctx, keyProfiles, profiles); err != nil {
			return nil, err
		}
		updated := profiles[i]
		return &updated, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
}

// SelectProfile records id as the active profile
func (s *Store) SelectProfile(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := s.loadProfiles(ctx)
	if err != nil {
		return err
	}
	if findProfile(profiles, id) < 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	return s.put(ctx, keySelectedProfileID, []byte(id.String()))
}

// SelectedProfile returns the active profile, falling back to the first
// profile when none was selected or the selection no longer exists
func (s *Store) SelectedProfile(ctx context.Context) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := s.loadProfiles(ctx)
	if err != nil {
		return nil, err
	}

	raw, ok, err := s.get(ctx, keySelectedProfileID)
	if err != nil {
		return nil, err
	}
	if ok {
		if id, err := uuid.ParseBytes(raw); err == nil {
			if i := findProfile(profiles, id); i >= 0 {
				p := profiles[i]
				return &p, nil
			}
		}
	}

	p := profiles[0]
	return &p, nil
}

// FindProfile resolves a profile by id string or case-insensitive name
func (s *Store) FindProfile(ctx context.Context, idOrName string) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := s.loadProfiles(ctx)
	if err != nil {
		return nil, err
	}

	if id, err := uuid.Parse(idOrName); err == nil {
		if i := findProfile(profiles, id); i >= 0 {
			p := profiles[i]
			return &p, nil
		}
	}
	for _, p := range profiles {
		if strings.EqualFold(p.Name, idOrName) {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, idOrName)
}

func findProfile(profiles []Profile, id uuid.UUID) int {
	for i, p := range profiles {
		if p.ID == id {
			return i
		}
	}
	return -1
}

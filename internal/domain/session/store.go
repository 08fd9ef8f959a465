// Package session is the in-memory state container behind the presentation adapters:
// selection, roster list, current build, saved builds, teams and settings.
package session

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/yanqian/pikacalc/internal/domain/roster"
	"github.com/yanqian/pikacalc/internal/domain/stats"
	apperrors "github.com/yanqian/pikacalc/pkg/errors"
)

// Store is safe for concurrent use. Every accessor returns copies.
type Store struct {
	mu           sync.RWMutex
	selected     *roster.Species
	list         []roster.Species
	current      Build
	builds       []Build
	teams        []Team
	selectedTeam string
	settings     Settings
	newID        func() string
}

// New builds an empty store whose fresh builds start at defaultLevel.
func New(defaultLevel int) *Store {
	if defaultLevel < stats.MinLevel || defaultLevel > stats.MaxLevel {
		defaultLevel = 50
	}
	s := &Store{
		settings: Settings{Theme: "dark", DefaultLevel: defaultLevel, AutoCalculate: true},
		newID:    uuid.NewString,
	}
	s.current = s.freshBuild()
	return s
}

func (s *Store) freshBuild() Build {
	return Build{
		Level:  s.settings.DefaultLevel,
		Nature: stats.DefaultNatureKey,
		IVs:    stats.DefaultIVs(),
		EVs:    stats.DefaultEVs(),
	}
}

// SelectPokemon sets or clears (nil) the selected species.
func (s *Store) SelectPokemon(sp *roster.Species) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = copySpecies(sp)
}

// Selected returns the selected species.
func (s *Store) Selected() (roster.Species, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return roster.Species{}, false
	}
	return *copySpecies(s.selected), true
}

// SetPokemonList replaces the resident roster list.
func (s *Store) SetPokemonList(list []roster.Species) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = slices.Clone(list)
}

// PokemonList returns the resident roster list.
func (s *Store) PokemonList() []roster.Species {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.list)
}

// CurrentBuild returns the build being edited.
func (s *Store) CurrentBuild() Build {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.clone()
}

// UpdateBuild merges patch into the current build.
func (s *Store) UpdateBuild(patch BuildPatch) (Build, error) {
	if patch.Level != nil && (*patch.Level < stats.MinLevel || *patch.Level > stats.MaxLevel) {
		return Build{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("level must be between %d and %d", stats.MinLevel, stats.MaxLevel), nil)
	}
	var natureKey string
	if patch.Nature != nil {
		n, err := stats.LookupNature(*patch.Nature)
		if err != nil {
			return Build{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
		}
		natureKey = n.Key
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.current
	if patch.Pokemon != nil {
		b.Pokemon = patch.Pokemon
	}
	if patch.Level != nil {
		b.Level = *patch.Level
	}
	if natureKey != "" {
		b.Nature = natureKey
	}
	if patch.IVs != nil {
		b.IVs = *patch.IVs
	}
	if patch.EVs != nil {
		b.EVs = *patch.EVs
	}
	if patch.Ability != nil {
		b.Ability = *patch.Ability
	}
	if patch.Item != nil {
		b.Item = *patch.Item
	}
	if patch.TeraType != nil {
		b.TeraType = *patch.TeraType
	}
	s.current = b.clone()
	return s.current.clone(), nil
}

// ResetBuild restores the defaults.
func (s *Store) ResetBuild() Build {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = s.freshBuild()
	return s.current
}

// SaveBuild appends b, assigning an id when it has none.
func (s *Store) SaveBuild(b Build) Build {
	s.mu.Lock()
	defer s.mu.Unlock()
	b = b.clone()
	if b.ID == "" {
		b.ID = s.newID()
	}
	s.builds = append(s.builds, b)
	return b.clone()
}

// Builds returns saved builds in save order.
func (s *Store) Builds() []Build {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Build, len(s.builds))
	for i, b := range s.builds {
		out[i] = b.clone()
	}
	return out
}

// DeleteBuild removes a saved build.
func (s *Store) DeleteBuild(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.builds)
	s.builds = slices.DeleteFunc(s.builds, func(b Build) bool { return b.ID == id })
	if len(s.builds) == before {
		return apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("build %q not found", id), nil)
	}
	return nil
}

// CreateTeam adds an empty team.
func (s *Store) CreateTeam(name string) (Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Team{}, apperrors.Wrap(apperrors.CodeInvalidInput, "team name cannot be empty", nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := Team{ID: s.newID(), Name: name, Members: []TeamMember{}}
	s.teams = append(s.teams, t)
	return t.clone(), nil
}

// DeleteTeam removes a team and clears it from the selection.
func (s *Store) DeleteTeam(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.teams)
	s.teams = slices.DeleteFunc(s.teams, func(t Team) bool { return t.ID == id })
	if len(s.teams) == before {
		return apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("team %q not found", id), nil)
	}
	if s.selectedTeam == id {
		s.selectedTeam = ""
	}
	return nil
}

// Teams returns all teams in creation order.
func (s *Store) Teams() []Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Team, len(s.teams))
	for i, t := range s.teams {
		out[i] = t.clone()
	}
	return out
}

// AddToTeam places b at position, replacing any member already there, and keeps members
// sorted by position.
func (s *Store) AddToTeam(teamID string, b Build, position int) (Team, error) {
	if position < 0 || position >= MaxTeamSize {
		return Team{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("position must be between 0 and %d", MaxTeamSize-1), nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.IndexFunc(s.teams, func(t Team) bool { return t.ID == teamID })
	if idx < 0 {
		return Team{}, apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("team %q not found", teamID), nil)
	}

	team := s.teams[idx]
	members := slices.DeleteFunc(slices.Clone(team.Members), func(m TeamMember) bool { return m.Position == position })
	members = append(members, TeamMember{Build: b.clone(), Position: position})
	slices.SortFunc(members, func(x, y TeamMember) int { return x.Position - y.Position })
	team.Members = members
	s.teams[idx] = team
	return team.clone(), nil
}

// SelectTeam marks a team as selected; an empty id clears the selection.
func (s *Store) SelectTeam(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" && !slices.ContainsFunc(s.teams, func(t Team) bool { return t.ID == id }) {
		return apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("team %q not found", id), nil)
	}
	s.selectedTeam = id
	return nil
}

// SelectedTeam returns the selected team.
func (s *Store) SelectedTeam() (Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.teams {
		if t.ID == s.selectedTeam && s.selectedTeam != "" {
			return t.clone(), true
		}
	}
	return Team{}, false
}

// Settings returns the user preferences.
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings merges patch into the settings.
func (s *Store) UpdateSettings(patch SettingsPatch) (Settings, error) {
	if patch.Theme != nil && *patch.Theme != "light" && *patch.Theme != "dark" {
		return Settings{}, apperrors.Wrap(apperrors.CodeInvalidInput, "theme must be light or dark", nil)
	}
	if patch.DefaultLevel != nil && (*patch.DefaultLevel < stats.MinLevel || *patch.DefaultLevel > stats.MaxLevel) {
		return Settings{}, apperrors.Wrap(apperrors.CodeInvalidInput, "default level must be between 1 and 100", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.Theme != nil {
		s.settings.Theme = *patch.Theme
	}
	if patch.DefaultLevel != nil {
		s.settings.DefaultLevel = *patch.DefaultLevel
	}
	if patch.AutoCalculate != nil {
		s.settings.AutoCalculate = *patch.AutoCalculate
	}
	if patch.CompactView != nil {
		s.settings.CompactView = *patch.CompactView
	}
	return s.settings, nil
}

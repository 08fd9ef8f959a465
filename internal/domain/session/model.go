package session

import (
	"slices"

	"github.com/yanqian/pikacalc/internal/domain/roster"
	"github.com/yanqian/pikacalc/internal/domain/stats"
)

// MaxTeamSize bounds team positions to 0..MaxTeamSize-1.
const MaxTeamSize = 6

// Build is one configured species.
type Build struct {
	ID       string          `json:"id,omitempty"`
	Pokemon  *roster.Species `json:"pokemon,omitempty"`
	Level    int             `json:"level"`
	Nature   string          `json:"nature"`
	IVs      stats.Stats     `json:"ivs"`
	EVs      stats.Stats     `json:"evs"`
	Ability  string          `json:"ability,omitempty"`
	Item     string          `json:"item,omitempty"`
	TeraType string          `json:"teraType,omitempty"`
}

// BuildPatch carries the fields to overwrite on the current build. Nil fields are kept.
type BuildPatch struct {
	Pokemon  *roster.Species `json:"pokemon"`
	Level    *int            `json:"level"`
	Nature   *string         `json:"nature"`
	IVs      *stats.Stats    `json:"ivs"`
	EVs      *stats.Stats    `json:"evs"`
	Ability  *string         `json:"ability"`
	Item     *string         `json:"item"`
	TeraType *string         `json:"teraType"`
}

// TeamMember is a build placed at a team slot.
type TeamMember struct {
	Build
	Position int `json:"position"`
}

// Team is a named group of members ordered by position.
type Team struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Members []TeamMember `json:"members"`
}

// Settings are the user preferences.
type Settings struct {
	Theme         string `json:"theme"`
	DefaultLevel  int    `json:"defaultLevel"`
	AutoCalculate bool   `json:"autoCalculate"`
	CompactView   bool   `json:"compactView"`
}

// SettingsPatch carries the settings to overwrite. Nil fields are kept.
type SettingsPatch struct {
	Theme         *string `json:"theme"`
	DefaultLevel  *int    `json:"defaultLevel"`
	AutoCalculate *bool   `json:"autoCalculate"`
	CompactView   *bool   `json:"compactView"`
}

func copySpecies(sp *roster.Species) *roster.Species {
	if sp == nil {
		return nil
	}
	out := *sp
	out.Types = slices.Clone(sp.Types)
	out.Abilities = slices.Clone(sp.Abilities)
	return &out
}

func (b Build) clone() Build {
	b.Pokemon = copySpecies(b.Pokemon)
	return b
}

func (t Team) clone() Team {
	members := make([]TeamMember, len(t.Members))
	for i, m := range t.Members {
		members[i] = TeamMember{Build: m.Build.clone(), Position: m.Position}
	}
	t.Members = members
	return t
}

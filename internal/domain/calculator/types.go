package calculator

import (
	"github.com/yanqian/pikacalc/internal/domain/roster"
	"github.com/yanqian/pikacalc/internal/domain/stats"
	"github.com/yanqian/pikacalc/internal/domain/typechart"
)

// StatsRequest describes one build. Either Pokemon or BaseStats must be set.
type StatsRequest struct {
	Pokemon   string       `json:"pokemon" validate:"required_without=BaseStats"`
	BaseStats *stats.Stats `json:"baseStats"`
	Level     int          `json:"level" validate:"omitempty,min=1,max=100"`
	Nature    string       `json:"nature"`
	IVs       *stats.Stats `json:"ivs"`
	EVs       *stats.Stats `json:"evs"`
}

// StatsResponse carries the calculated stats and the non-blocking EV report.
type StatsResponse struct {
	Pokemon     *roster.Species    `json:"pokemon,omitempty"`
	Level       int                `json:"level"`
	Nature      stats.Nature       `json:"nature"`
	BaseStats   stats.Stats        `json:"baseStats"`
	IVs         stats.Stats        `json:"ivs"`
	EVs         stats.Stats        `json:"evs"`
	Stats       stats.Stats        `json:"stats"`
	EVTotal     int                `json:"evTotal"`
	EVRemaining int                `json:"evRemaining"`
	Validation  stats.EVValidation `json:"validation"`
}

// TargetRequest asks for the lowest level at which Stat reaches Target.
type TargetRequest struct {
	Pokemon   string       `json:"pokemon" validate:"required_without=BaseStats"`
	BaseStats *stats.Stats `json:"baseStats"`
	Stat      string       `json:"stat" validate:"required"`
	Target    int          `json:"target" validate:"min=1"`
	Nature    string       `json:"nature"`
	IV        *int         `json:"iv" validate:"omitempty,min=0,max=31"`
	EV        *int         `json:"ev"`
}

// TargetResponse reports the level, or Found=false when level 100 falls short.
type TargetResponse struct {
	Stat       stats.StatName `json:"stat"`
	Target     int            `json:"target"`
	Found      bool           `json:"found"`
	Level      int            `json:"level,omitempty"`
	AtMaxLevel int            `json:"atMaxLevel"`
}

// MatchupRequest names the defending types directly or through a species.
type MatchupRequest struct {
	Types   []string `json:"types" validate:"required_without=Pokemon,omitempty,max=2"`
	Pokemon string   `json:"pokemon"`
}

// MatchupResponse is the defensive profile plus STAB coverage.
type MatchupResponse struct {
	Pokemon     *roster.Species      `json:"pokemon,omitempty"`
	Types       []typechart.Type     `json:"types"`
	Weaknesses  []typechart.Matchup  `json:"weaknesses"`
	Resistances []typechart.Matchup  `json:"resistances"`
	Immunities  []typechart.Type     `json:"immunities"`
	Coverage    []typechart.Coverage `json:"coverage"`
}

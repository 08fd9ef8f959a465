package typechart

import "sort"

// Matchup pairs a type with a combined damage multiplier.
type Matchup struct {
	Type       Type    `json:"type"`
	Multiplier float64 `json:"multiplier"`
}

// Coverage lists the defending types one attacking type hits super-effectively.
type Coverage struct {
	Type           Type      `json:"type"`
	SuperEffective []Matchup `json:"superEffective"`
}

// Weaknesses lists attacking types dealing more than neutral damage to the defender,
// strongest first.
func Weaknesses(defenders []Type) []Matchup {
	out := collect(defenders, func(m float64) bool { return m > 1 })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Multiplier > out[j].Multiplier })
	return out
}

// Resistances lists attacking types dealing reduced but non-zero damage, weakest first.
func Resistances(defenders []Type) []Matchup {
	out := collect(defenders, func(m float64) bool { return m > 0 && m < 1 })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Multiplier < out[j].Multiplier })
	return out
}

// Immunities lists attacking types dealing no damage, alphabetically.
func Immunities(defenders []Type) []Type {
	matches := collect(defenders, func(m float64) bool { return m == 0 })
	out := make([]Type, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Type)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// STABCoverage reports, for each of the species' own types, which defending types that
// type's attacks hit for more than neutral damage.
func STABCoverage(types []Type) []Coverage {
	out := make([]Coverage, 0, len(types))
	for _, attacker := range types {
		hits := make([]Matchup, 0)
		for _, defender := range All {
			if m := Multiplier(attacker, defender); m > 1 {
				hits = append(hits, Matchup{Type: defender, Multiplier: m})
			}
		}
		sort.SliceStable(hits, func(i, j int) bool { return hits[i].Multiplier > hits[j].Multiplier })
		out = append(out, Coverage{Type: attacker, SuperEffective: hits})
	}
	return out
}

func collect(defenders []Type, keep func(float64) bool) []Matchup {
	out := make([]Matchup, 0)
	for _, attacker := range All {
		m := Effectiveness(attacker, defenders...)
		if keep(m) {
			out = append(out, Matchup{Type: attacker, Multiplier: m})
		}
	}
	return out
}

// Package stats implements the battle stat formulas, natures and effort value rules.
package stats

import "fmt"

// StatName identifies one of the six battle stats.
type StatName string

const (
	HP             StatName = "hp"
	Attack         StatName = "attack"
	Defense        StatName = "defense"
	SpecialAttack  StatName = "special-attack"
	SpecialDefense StatName = "special-defense"
	Speed          StatName = "speed"
)

// StatNames is the fixed slot order used by the data source and every stat vector.
var StatNames = []StatName{HP, Attack, Defense, SpecialAttack, SpecialDefense, Speed}

var displayNames = map[StatName]string{
	HP:             "HP",
	Attack:         "Attack",
	Defense:        "Defense",
	SpecialAttack:  "Sp. Atk",
	SpecialDefense: "Sp. Def",
	Speed:          "Speed",
}

var longNames = map[StatName]string{
	HP:             "HP",
	Attack:         "Attack",
	Defense:        "Defense",
	SpecialAttack:  "Special Attack",
	SpecialDefense: "Special Defense",
	Speed:          "Speed",
}

// DisplayName returns the short label shown next to a stat value.
func (s StatName) DisplayName() string {
	if name, ok := displayNames[s]; ok {
		return name
	}
	return string(s)
}

// Valid reports whether s is one of the six stats.
func (s StatName) Valid() bool {
	_, ok := displayNames[s]
	return ok
}

// ParseStatName accepts the canonical names plus common short forms.
func ParseStatName(raw string) (StatName, error) {
	switch raw {
	case "hp":
		return HP, nil
	case "attack", "atk":
		return Attack, nil
	case "defense", "def":
		return Defense, nil
	case "special-attack", "spa", "spatk":
		return SpecialAttack, nil
	case "special-defense", "spd", "spdef":
		return SpecialDefense, nil
	case "speed", "spe":
		return Speed, nil
	}
	return "", fmt.Errorf("unknown stat %q", raw)
}

// Stats is a six-stat vector. It carries base stats, IVs, EVs and calculated stats alike.
type Stats struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"special-attack"`
	SpecialDefense int `json:"special-defense"`
	Speed          int `json:"speed"`
}

// Uniform returns a vector with every stat set to v.
func Uniform(v int) Stats {
	return Stats{HP: v, Attack: v, Defense: v, SpecialAttack: v, SpecialDefense: v, Speed: v}
}

// FromSlice maps six values in slot order onto a vector.
func FromSlice(values []int) (Stats, error) {
	if len(values) != len(StatNames) {
		return Stats{}, fmt.Errorf("expected %d stat values, got %d", len(StatNames), len(values))
	}
	var s Stats
	for i, name := range StatNames {
		s = s.With(name, values[i])
	}
	return s, nil
}

// Get returns the value stored for name.
func (s Stats) Get(name StatName) int {
	switch name {
	case HP:
		return s.HP
	case Attack:
		return s.Attack
	case Defense:
		return s.Defense
	case SpecialAttack:
		return s.SpecialAttack
	case SpecialDefense:
		return s.SpecialDefense
	case Speed:
		return s.Speed
	}
	return 0
}

// With returns a copy of s with name set to v.
func (s Stats) With(name StatName, v int) Stats {
	switch name {
	case HP:
		s.HP = v
	case Attack:
		s.Attack = v
	case Defense:
		s.Defense = v
	case SpecialAttack:
		s.SpecialAttack = v
	case SpecialDefense:
		s.SpecialDefense = v
	case Speed:
		s.Speed = v
	}
	return s
}

// Slice returns the values in slot order.
func (s Stats) Slice() []int {
	out := make([]int, 0, len(StatNames))
	for _, name := range StatNames {
		out = append(out, s.Get(name))
	}
	return out
}

// Total sums all six values.
func (s Stats) Total() int {
	return s.HP + s.Attack + s.Defense + s.SpecialAttack + s.SpecialDefense + s.Speed
}

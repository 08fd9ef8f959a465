// Package typechart holds the attacking-type to defending-type damage table and the
// matchup views derived from it. Every function here is pure.
package typechart

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Type is a lowercase elemental type tag as used by the species data source.
type Type string

// The 18 member type universe.
const (
	Normal   Type = "normal"
	Fire     Type = "fire"
	Water    Type = "water"
	Electric Type = "electric"
	Grass    Type = "grass"
	Ice      Type = "ice"
	Fighting Type = "fighting"
	Poison   Type = "poison"
	Ground   Type = "ground"
	Flying   Type = "flying"
	Psychic  Type = "psychic"
	Bug      Type = "bug"
	Rock     Type = "rock"
	Ghost    Type = "ghost"
	Dragon   Type = "dragon"
	Dark     Type = "dark"
	Steel    Type = "steel"
	Fairy    Type = "fairy"
)

// All lists the universe in canonical order. Tie-breaking in sorted views follows this order.
var All = []Type{
	Normal, Fire, Water, Electric, Grass, Ice, Fighting, Poison, Ground,
	Flying, Psychic, Bug, Rock, Ghost, Dragon, Dark, Steel, Fairy,
}

var canonicalIndex = func() map[Type]int {
	idx := make(map[Type]int, len(All))
	for i, t := range All {
		idx[t] = i
	}
	return idx
}()

// Known reports whether t belongs to the type universe.
func (t Type) Known() bool {
	_, ok := canonicalIndex[t]
	return ok
}

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// ParseType normalizes user input into a known type.
func ParseType(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Known() {
		return "", fmt.Errorf("unknown type %q", raw)
	}
	return t, nil
}

// ParseTypes accepts one or two distinct known types, preserving order.
func ParseTypes(raw []string) ([]Type, error) {
	var out []Type
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			t, err := ParseType(part)
			if err != nil {
				return nil, err
			}
			for _, seen := range out {
				if seen == t {
					return nil, fmt.Errorf("duplicate type %q", t)
				}
			}
			out = append(out, t)
		}
	}
	if len(out) == 0 || len(out) > 2 {
		return nil, fmt.Errorf("expected 1 or 2 types, got %d", len(out))
	}
	return out, nil
}

// FromStrings converts raw tags without validation; unknown tags stay neutral in every view.
func FromStrings(raw []string) []Type {
	out := make([]Type, 0, len(raw))
	for _, r := range raw {
		out = append(out, Type(strings.ToLower(strings.TrimSpace(r))))
	}
	return out
}

// FormatTypeName returns the display form, e.g. "Fire".
func FormatTypeName(t Type) string {
	return cases.Title(language.English).String(string(t))
}

package stats

import (
	"fmt"
	"strings"
)

// Nature raises one stat by 10% and lowers another by 10%. Neutral natures leave both empty.
type Nature struct {
	Key       string   `json:"key"`
	Name      string   `json:"name"`
	Increased StatName `json:"increased,omitempty"`
	Decreased StatName `json:"decreased,omitempty"`
}

// Neutral reports whether the nature modifies nothing.
func (n Nature) Neutral() bool {
	return n.Increased == "" && n.Decreased == ""
}

var natures = []Nature{
	{Key: "hardy", Name: "Hardy"},
	{Key: "lonely", Name: "Lonely", Increased: Attack, Decreased: Defense},
	{Key: "brave", Name: "Brave", Increased: Attack, Decreased: Speed},
	{Key: "adamant", Name: "Adamant", Increased: Attack, Decreased: SpecialAttack},
	{Key: "naughty", Name: "Naughty", Increased: Attack, Decreased: SpecialDefense},
	{Key: "bold", Name: "Bold", Increased: Defense, Decreased: Attack},
	{Key: "docile", Name: "Docile"},
	{Key: "relaxed", Name: "Relaxed", Increased: Defense, Decreased: Speed},
	{Key: "impish", Name: "Impish", Increased: Defense, Decreased: SpecialAttack},
	{Key: "lax", Name: "Lax", Increased: Defense, Decreased: SpecialDefense},
	{Key: "timid", Name: "Timid", Increased: Speed, Decreased: Attack},
	{Key: "hasty", Name: "Hasty", Increased: Speed, Decreased: Defense},
	{Key: "serious", Name: "Serious"},
	{Key: "jolly", Name: "Jolly", Increased: Speed, Decreased: SpecialAttack},
	{Key: "naive", Name: "Naive", Increased: Speed, Decreased: SpecialDefense},
	{Key: "modest", Name: "Modest", Increased: SpecialAttack, Decreased: Attack},
	{Key: "mild", Name: "Mild", Increased: SpecialAttack, Decreased: Defense},
	{Key: "quiet", Name: "Quiet", Increased: SpecialAttack, Decreased: Speed},
	{Key: "bashful", Name: "Bashful"},
	{Key: "rash", Name: "Rash", Increased: SpecialAttack, Decreased: SpecialDefense},
	{Key: "calm", Name: "Calm", Increased: SpecialDefense, Decreased: Attack},
	{Key: "gentle", Name: "Gentle", Increased: SpecialDefense, Decreased: Defense},
	{Key: "sassy", Name: "Sassy", Increased: SpecialDefense, Decreased: Speed},
	{Key: "careful", Name: "Careful", Increased: SpecialDefense, Decreased: SpecialAttack},
	{Key: "quirky", Name: "Quirky"},
}

var naturesByKey = func() map[string]Nature {
	m := make(map[string]Nature, len(natures))
	for _, n := range natures {
		m[n.Key] = n
	}
	return m
}()

// DefaultNatureKey is the nature a fresh build starts with.
const DefaultNatureKey = "hardy"

// Natures returns all 25 natures in their conventional order.
func Natures() []Nature {
	out := make([]Nature, len(natures))
	copy(out, natures)
	return out
}

// LookupNature finds a nature by key, case-insensitively.
func LookupNature(key string) (Nature, error) {
	n, ok := naturesByKey[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return Nature{}, fmt.Errorf("unknown nature %q", key)
	}
	return n, nil
}

// Modifier returns the multiplier a nature applies to stat. A nil nature is neutral.
func Modifier(stat StatName, nature *Nature) float64 {
	if nature == nil {
		return 1
	}
	switch stat {
	case nature.Increased:
		return 1.1
	case nature.Decreased:
		return 0.9
	}
	return 1
}

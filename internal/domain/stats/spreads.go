package stats

import "fmt"

// Spread is a named, ready-to-apply EV preset.
type Spread struct {
	Key string `json:"key"`
	EVs Stats  `json:"evs"`
}

var spreads = []Spread{
	{Key: "physical", EVs: Stats{HP: 252, Attack: 252, Defense: 4}},
	{Key: "special", EVs: Stats{HP: 252, Defense: 4, SpecialAttack: 252}},
	{Key: "mixed", EVs: Stats{HP: 252, Attack: 128, Defense: 4, SpecialAttack: 124}},
	{Key: "bulky", EVs: Stats{HP: 252, Defense: 252, SpecialDefense: 4}},
	{Key: "speedyPhysical", EVs: Stats{Attack: 252, SpecialDefense: 4, Speed: 252}},
	{Key: "speedySpecial", EVs: Stats{SpecialAttack: 252, SpecialDefense: 4, Speed: 252}},
	{Key: "defensiveSpeaker", EVs: Stats{HP: 252, SpecialAttack: 252, SpecialDefense: 4}},
	{Key: "defensive", EVs: Stats{HP: 252, Attack: 4, Defense: 252}},
}

// EVSpreads returns the presets in display order.
func EVSpreads() []Spread {
	out := make([]Spread, len(spreads))
	copy(out, spreads)
	return out
}

// LookupSpread finds a preset by key.
func LookupSpread(key string) (Spread, error) {
	for _, s := range spreads {
		if s.Key == key {
			return s, nil
		}
	}
	return Spread{}, fmt.Errorf("unknown EV spread %q", key)
}

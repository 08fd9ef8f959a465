package typechart

// table maps attacker -> defender -> multiplier. Absent cells are neutral (1).
var table = map[Type]map[Type]float64{
	Normal:   {Rock: 0.5, Ghost: 0, Steel: 0.5},
	Fire:     {Fire: 0.5, Water: 0.5, Grass: 2, Ice: 2, Bug: 2, Steel: 2, Fairy: 1},
	Water:    {Fire: 2, Water: 0.5, Grass: 0.5, Ground: 2, Rock: 2, Dragon: 0.5},
	Electric: {Water: 2, Grass: 0.5, Electric: 0.5, Ground: 0, Flying: 2, Dragon: 0.5},
	Grass:    {Fire: 0.5, Water: 2, Grass: 0.5, Poison: 0.5, Ground: 2, Flying: 0.5, Bug: 0.5, Rock: 2, Dragon: 0.5, Steel: 0.5},
	Ice:      {Fire: 0.5, Water: 0.5, Grass: 2, Ice: 0.5, Ground: 2, Flying: 2, Dragon: 2, Steel: 0.5},
	Fighting: {Normal: 2, Flying: 0.5, Poison: 0.5, Rock: 2, Bug: 0.5, Ghost: 0, Ice: 2, Dark: 2, Steel: 2, Fairy: 0.5},
	Poison:   {Grass: 2, Poison: 0.5, Ground: 0.5, Rock: 0.5, Ghost: 0.5, Steel: 0, Fairy: 2},
	Ground:   {Fire: 2, Electric: 2, Grass: 0.5, Poison: 2, Rock: 2, Water: 1, Flying: 0, Ice: 1, Steel: 2},
	Flying:   {Fighting: 2, Bug: 2, Grass: 2, Electric: 0.5, Rock: 0.5, Steel: 0.5},
	Psychic:  {Fighting: 2, Poison: 2, Psychic: 0.5, Dark: 0, Steel: 0.5},
	Bug:      {Fire: 0.5, Grass: 2, Fighting: 0.5, Poison: 0.5, Flying: 0.5, Psychic: 2, Ghost: 0.5, Dark: 2, Steel: 0.5, Fairy: 0.5},
	Rock:     {Fire: 2, Ice: 2, Flying: 2, Bug: 2, Steel: 0.5, Fighting: 0.5, Ground: 0.5},
	Ghost:    {Poison: 0.5, Bug: 0.5, Ghost: 2, Dark: 0.5, Normal: 0, Fighting: 0},
	Dragon:   {Dragon: 2, Steel: 0.5, Fairy: 0},
	Dark:     {Fighting: 0.5, Psychic: 2, Ghost: 2, Dark: 0.5, Fairy: 0.5},
	Steel:    {Fire: 0.5, Water: 0.5, Electric: 0.5, Ice: 2, Rock: 2, Flying: 0, Grass: 0.5, Psychic: 0.5, Bug: 0.5, Ghost: 0.5, Dragon: 0.5, Steel: 0.5, Fairy: 2, Normal: 0.5, Poison: 0, Ground: 0},
	Fairy:    {Fire: 0.5, Poison: 0.5, Steel: 0.5, Fighting: 2, Dark: 2, Dragon: 2},
}

// Multiplier returns the single-type multiplier of attacker against defender.
func Multiplier(attacker, defender Type) float64 {
	if m, ok := table[attacker][defender]; ok {
		return m
	}
	return 1
}

// Effectiveness multiplies the attacker's multiplier against every defending type.
// A zero anywhere makes the whole product zero.
func Effectiveness(attacker Type, defenders ...Type) float64 {
	m := 1.0
	for _, d := range defenders {
		m *= Multiplier(attacker, d)
	}
	return m
}

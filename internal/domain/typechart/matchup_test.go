package typechart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWeaknessesDefaultToNeutralForMissingCells(t *testing.T) {
	weak := Weaknesses([]Type{Water})

	require.Equal(t, []Matchup{
		{Type: Electric, Multiplier: 2},
		{Type: Grass, Multiplier: 2},
	}, weak)
	for _, m := range weak {
		require.NotEqual(t, Ground, m.Type)
	}
}

func TestWeaknessesDualType(t *testing.T) {
	weak := Weaknesses([]Type{Ghost, Dark})
	require.Equal(t, []Matchup{{Type: Fairy, Multiplier: 2}}, weak)
}

func TestWeaknessesQuadrupleSortsFirst(t *testing.T) {
	weak := Weaknesses([]Type{Grass, Bug})
	require.NotEmpty(t, weak)
	require.Equal(t, Matchup{Type: Fire, Multiplier: 4}, weak[0])
	require.Equal(t, Matchup{Type: Flying, Multiplier: 4}, weak[1])
	for i := 1; i < len(weak); i++ {
		require.GreaterOrEqual(t, weak[i-1].Multiplier, weak[i].Multiplier)
	}
}

func TestResistancesAscendingWithCanonicalTies(t *testing.T) {
	res := Resistances([]Type{Water})
	require.Equal(t, []Matchup{
		{Type: Fire, Multiplier: 0.5},
		{Type: Water, Multiplier: 0.5},
		{Type: Ice, Multiplier: 0.5},
		{Type: Steel, Multiplier: 0.5},
	}, res)

	res = Resistances([]Type{Ghost, Dark})
	require.Equal(t, []Matchup{
		{Type: Poison, Multiplier: 0.5},
		{Type: Steel, Multiplier: 0.5},
	}, res)
}

func TestImmunities(t *testing.T) {
	require.Equal(t, []Type{Fighting, Normal}, Immunities([]Type{Ghost}))
	require.Equal(t, []Type{Fighting, Normal, Psychic}, Immunities([]Type{Ghost, Dark}))
	require.Empty(t, Immunities([]Type{Water}))
}

func TestImmunityWinsOverWeakness(t *testing.T) {
	// Ground hits steel for 2 but flying for 0.
	require.Equal(t, 0.0, Effectiveness(Ground, Steel, Flying))
	require.Contains(t, Immunities([]Type{Steel, Flying}), Ground)
}

func TestUnknownTypeIsNeutral(t *testing.T) {
	require.Equal(t, 1.0, Multiplier(Type("shadow"), Water))
	require.Equal(t, Weaknesses([]Type{Water}), Weaknesses([]Type{Water, Type("shadow")}))
}

func TestViewsAreDeterministic(t *testing.T) {
	for i := 0; i < 5; i++ {
		require.Equal(t, Weaknesses([]Type{Steel, Fairy}), Weaknesses([]Type{Steel, Fairy}))
		require.Equal(t, Resistances([]Type{Steel, Fairy}), Resistances([]Type{Steel, Fairy}))
	}
}

func TestSTABCoverage(t *testing.T) {
	cov := STABCoverage([]Type{Ghost, Dark})
	require.Len(t, cov, 2)
	require.Equal(t, Ghost, cov[0].Type)
	require.Equal(t, []Matchup{{Type: Ghost, Multiplier: 2}}, cov[0].SuperEffective)
	require.Equal(t, Dark, cov[1].Type)
	require.Equal(t, []Matchup{
		{Type: Psychic, Multiplier: 2},
		{Type: Ghost, Multiplier: 2},
	}, cov[1].SuperEffective)
}

func TestSTABCoverageIgnoresExplicitNeutralCells(t *testing.T) {
	cov := STABCoverage([]Type{Fire})
	for _, hit := range cov[0].SuperEffective {
		require.NotEqual(t, Fairy, hit.Type)
	}
}

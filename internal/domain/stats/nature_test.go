package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNatureTable(t *testing.T) {
	all := Natures()
	require.Len(t, all, 25)

	neutral := 0
	for _, n := range all {
		if n.Neutral() {
			neutral++
			continue
		}
		require.NotEmpty(t, n.Increased, n.Key)
		require.NotEmpty(t, n.Decreased, n.Key)
		require.NotEqual(t, n.Increased, n.Decreased, n.Key)
		require.NotEqual(t, HP, n.Increased)
		require.NotEqual(t, HP, n.Decreased)
	}
	require.Equal(t, 5, neutral)
}

func TestNatureNeverBoostsAndLowersSameStat(t *testing.T) {
	for _, n := range Natures() {
		for _, stat := range StatNames {
			require.False(t, n.Increased == stat && n.Decreased == stat)
		}
	}
}

func TestLookupNature(t *testing.T) {
	n, err := LookupNature(" Adamant ")
	require.NoError(t, err)
	require.Equal(t, Attack, n.Increased)
	require.Equal(t, SpecialAttack, n.Decreased)

	_, err = LookupNature("grumpy")
	require.Error(t, err)
}

func TestModifier(t *testing.T) {
	timid, err := LookupNature("timid")
	require.NoError(t, err)

	require.Equal(t, 1.1, Modifier(Speed, &timid))
	require.Equal(t, 0.9, Modifier(Attack, &timid))
	require.Equal(t, 1.0, Modifier(Defense, &timid))
	require.Equal(t, 1.0, Modifier(Speed, nil))
}

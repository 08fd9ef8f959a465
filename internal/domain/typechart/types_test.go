package typechart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUniverse(t *testing.T) {
	require.Len(t, All, 18)
	for _, typ := range All {
		require.True(t, typ.Known())
	}
}

func TestParseTypes(t *testing.T) {
	got, err := ParseTypes([]string{" Ghost", "dark "})
	require.NoError(t, err)
	require.Equal(t, []Type{Ghost, Dark}, got)

	got, err = ParseTypes([]string{"steel,fairy"})
	require.NoError(t, err)
	require.Equal(t, []Type{Steel, Fairy}, got)

	_, err = ParseTypes([]string{"fire", "fire"})
	require.Error(t, err)

	_, err = ParseTypes([]string{"fire", "water", "grass"})
	require.Error(t, err)

	_, err = ParseTypes(nil)
	require.Error(t, err)

	_, err = ParseTypes([]string{"sound"})
	require.Error(t, err)
}

func TestFormatTypeName(t *testing.T) {
	require.Equal(t, "Fire", FormatTypeName(Fire))
	require.Equal(t, "Electric", FormatTypeName(Electric))
}

func TestFromStringsKeepsUnknownTags(t *testing.T) {
	got := FromStrings([]string{" Fire ", "shadow"})
	require.Equal(t, []Type{Fire, Type("shadow")}, got)
	require.False(t, got[1].Known())
	require.Equal(t, 1.0, Effectiveness(Water, Type("shadow")))
}

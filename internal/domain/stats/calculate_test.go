package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustNature(t *testing.T, key string) *Nature {
	t.Helper()
	n, err := LookupNature(key)
	require.NoError(t, err)
	return &n
}

func TestCalculateStatBoostedAttack(t *testing.T) {
	got := CalculateStat(100, 31, 252, 100, Attack, mustNature(t, "adamant"))
	require.Equal(t, 328, got)
}

func TestCalculateStatLoweredAndNeutral(t *testing.T) {
	modest := mustNature(t, "modest")
	require.Equal(t, 269, CalculateStat(100, 31, 252, 100, Attack, modest)) // floor(299*0.9)
	require.Equal(t, 299, CalculateStat(100, 31, 252, 100, Attack, mustNature(t, "hardy")))
	require.Equal(t, 299, CalculateStat(100, 31, 252, 100, Attack, nil))
}

func TestCalculateStatHP(t *testing.T) {
	// floor((2*108+31+63)*50/100) + 50 + 1 = 155 + 51
	require.Equal(t, 206, CalculateStat(108, 31, 252, 50, HP, nil))
	// Shedinja-like minimum: base 1, level 1.
	require.Equal(t, 2, CalculateStat(1, 0, 0, 1, HP, nil))
}

func TestCalculateStatClampsInputs(t *testing.T) {
	require.Equal(t,
		CalculateStat(80, 31, 252, 50, Speed, nil),
		CalculateStat(80, 99, 400, 50, Speed, nil),
	)
	require.Equal(t,
		CalculateStat(80, 0, 0, 50, Speed, nil),
		CalculateStat(80, -5, -10, 50, Speed, nil),
	)
}

func TestCalculateStatFloorsEVQuarterBeforeAdding(t *testing.T) {
	// ev 3 contributes floor(3/4)=0, so it matches ev 0.
	require.Equal(t, CalculateStat(90, 31, 0, 100, Defense, nil), CalculateStat(90, 31, 3, 100, Defense, nil))
	require.Equal(t, CalculateStat(90, 31, 0, 100, Defense, nil)+1, CalculateStat(90, 31, 4, 100, Defense, nil))
}

func TestNatureIntegerMathMatchesFloatFloor(t *testing.T) {
	n := mustNature(t, "jolly")
	for base := 1; base <= 255; base += 7 {
		for level := 1; level <= 100; level += 3 {
			raw := CalculateStat(base, 31, 252, level, Speed, nil)
			require.Equal(t, int(math.Floor(float64(raw)*1.1)), CalculateStat(base, 31, 252, level, Speed, n))
			require.Equal(t, int(math.Floor(float64(raw)*0.9)), CalculateStat(base, 31, 252, level, SpecialAttack, n))
		}
	}
}

func TestCalculateStatMonotonicInLevel(t *testing.T) {
	for _, nature := range Natures() {
		nature := nature
		for _, stat := range StatNames {
			for _, base := range []int{1, 45, 100, 255} {
				prev := 0
				for level := MinLevel; level <= MaxLevel; level++ {
					v := CalculateStat(base, 31, 252, level, stat, &nature)
					require.GreaterOrEqual(t, v, prev, "nature=%s stat=%s base=%d level=%d", nature.Key, stat, base, level)
					prev = v
				}
			}
		}
	}
}

func TestHPIgnoresNature(t *testing.T) {
	want := CalculateStat(95, 20, 100, 77, HP, nil)
	for _, nature := range Natures() {
		nature := nature
		require.Equal(t, want, CalculateStat(95, 20, 100, 77, HP, &nature))
	}
}

func TestCalculateAll(t *testing.T) {
	garchomp := Stats{HP: 108, Attack: 130, Defense: 95, SpecialAttack: 80, SpecialDefense: 85, Speed: 102}
	evs := Stats{Attack: 252, SpecialDefense: 4, Speed: 252}
	got := CalculateAll(garchomp, DefaultIVs(), evs, 50, mustNature(t, "jolly"))

	require.Equal(t, Stats{HP: 174, Attack: 182, Defense: 115, SpecialAttack: 90, SpecialDefense: 106, Speed: 169}, got)
}

func TestFindLevelForTargetStat(t *testing.T) {
	level, ok := FindLevelForTargetStat(100, 31, 252, 299, Attack, nil)
	require.True(t, ok)
	require.Equal(t, 100, level)

	level, ok = FindLevelForTargetStat(100, 31, 252, 1, Attack, nil)
	require.True(t, ok)
	require.Equal(t, 1, level)

	_, ok = FindLevelForTargetStat(100, 31, 252, 300, Attack, nil)
	require.False(t, ok)

	for target := 10; target <= 300; target += 13 {
		got, found := FindLevelForTargetStat(80, 31, 0, target, Speed, nil)
		want, wantFound := linearLevelScan(80, 31, 0, target, Speed)
		require.Equal(t, wantFound, found)
		require.Equal(t, want, got, "target=%d", target)
	}
}

func linearLevelScan(base, iv, ev, target int, stat StatName) (int, bool) {
	for level := MinLevel; level <= MaxLevel; level++ {
		if CalculateStat(base, iv, ev, level, stat, nil) >= target {
			return level, true
		}
	}
	return 0, false
}

func TestRemainingEV(t *testing.T) {
	require.Equal(t, 0, RemainingEV(Stats{HP: 252, Attack: 252, Defense: 4}))
	require.Equal(t, 508, RemainingEV(Stats{}))
	require.Equal(t, -10, RemainingEV(Stats{HP: 252, Attack: 252, Defense: 14}))
}

func TestValidateEVs(t *testing.T) {
	res := ValidateEVs(Stats{HP: 252, Attack: 252, Defense: 4})
	require.True(t, res.Valid)
	require.Empty(t, res.Errors)

	res = ValidateEVs(Stats{Attack: 253})
	require.False(t, res.Valid)
	require.Equal(t, []string{"Attack EV cannot exceed 252"}, res.Errors)

	res = ValidateEVs(Stats{HP: 252, Attack: 252, Defense: 5})
	require.False(t, res.Valid)
	require.Equal(t, []string{"Total EV is 509, cannot exceed 508"}, res.Errors)

	res = ValidateEVs(Stats{SpecialAttack: 300, SpecialDefense: 300})
	require.Equal(t, []string{
		"Special Attack EV cannot exceed 252",
		"Special Defense EV cannot exceed 252",
		"Total EV is 600, cannot exceed 508",
	}, res.Errors)
}

func TestValidateEVsDoesNotMutate(t *testing.T) {
	evs := Stats{Speed: 400}
	_ = ValidateEVs(evs)
	require.Equal(t, 400, evs.Speed)
}

func TestDistributeEVs(t *testing.T) {
	base := Stats{HP: 4}
	got := DistributeEVs(map[StatName]int{Attack: 300, Speed: 100}, base)
	require.Equal(t, Stats{HP: 4, Attack: 252, Speed: 100}, got)
	require.Equal(t, Stats{HP: 4}, base)
}

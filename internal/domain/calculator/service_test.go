package calculator

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/pikacalc/internal/domain/roster"
	"github.com/yanqian/pikacalc/internal/domain/stats"
	"github.com/yanqian/pikacalc/internal/domain/typechart"
	apperrors "github.com/yanqian/pikacalc/pkg/errors"
)

type stubLookup struct {
	species map[string]roster.Species
}

func (s stubLookup) Lookup(_ context.Context, nameOrID string) (roster.Species, error) {
	sp, ok := s.species[nameOrID]
	if !ok {
		return roster.Species{}, apperrors.Wrap(apperrors.CodeNotFound, "pokemon not found", nil)
	}
	return sp, nil
}

var garchomp = roster.Species{
	ID:        445,
	Name:      "Garchomp",
	Types:     []typechart.Type{typechart.Dragon, typechart.Ground},
	BaseStats: stats.Stats{HP: 108, Attack: 130, Defense: 95, SpecialAttack: 80, SpecialDefense: 85, Speed: 102},
}

func newTestService() Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(Config{DefaultLevel: 50}, stubLookup{species: map[string]roster.Species{"garchomp": garchomp}}, logger)
}

func TestCalculateBySpecies(t *testing.T) {
	resp, err := newTestService().Calculate(context.Background(), StatsRequest{
		Pokemon: "garchomp",
		Nature:  "Jolly",
		EVs:     &stats.Stats{Attack: 252, SpecialDefense: 4, Speed: 252},
	})
	require.NoError(t, err)
	require.Equal(t, 50, resp.Level)
	require.Equal(t, "jolly", resp.Nature.Key)
	require.Equal(t, stats.Stats{HP: 174, Attack: 182, Defense: 115, SpecialAttack: 90, SpecialDefense: 106, Speed: 169}, resp.Stats)
	require.Equal(t, 508, resp.EVTotal)
	require.Equal(t, 0, resp.EVRemaining)
	require.True(t, resp.Validation.Valid)
	require.NotNil(t, resp.Pokemon)
}

func TestCalculateKeepsComputingWithInvalidEVs(t *testing.T) {
	resp, err := newTestService().Calculate(context.Background(), StatsRequest{
		BaseStats: &stats.Stats{HP: 100, Attack: 100, Defense: 100, SpecialAttack: 100, SpecialDefense: 100, Speed: 100},
		Level:     100,
		EVs:       &stats.Stats{Attack: 300, Speed: 252},
	})
	require.NoError(t, err)
	require.False(t, resp.Validation.Valid)
	require.Equal(t, []string{"Attack EV cannot exceed 252", "Total EV is 552, cannot exceed 508"}, resp.Validation.Errors)
	require.Equal(t, 299, resp.Stats.Attack)
	require.Equal(t, -44, resp.EVRemaining)
	require.Nil(t, resp.Pokemon)
}

func TestCalculateRejectsBadInput(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Calculate(ctx, StatsRequest{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Calculate(ctx, StatsRequest{Pokemon: "garchomp", Level: 101})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Calculate(ctx, StatsRequest{Pokemon: "garchomp", Nature: "grumpy"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Calculate(ctx, StatsRequest{Pokemon: "missingno"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestCalculateRejectsIVsOutsideRange(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	base := stats.Uniform(100)

	for _, v := range []int{-5, 32, 99} {
		ivs := stats.Uniform(v)
		resp, err := svc.Calculate(ctx, StatsRequest{BaseStats: &base, IVs: &ivs, Level: 100})
		require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput), "iv %d", v)
		require.Zero(t, resp.Stats.HP)
	}

	ivs := stats.Uniform(31).With(stats.Speed, 0)
	resp, err := svc.Calculate(ctx, StatsRequest{BaseStats: &base, IVs: &ivs, Level: 100})
	require.NoError(t, err)
	require.Equal(t, 0, resp.IVs.Speed)
}

func TestTargetLevelRejectsIVOutsideRange(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for _, v := range []int{-1, 32} {
		_, err := svc.TargetLevel(ctx, TargetRequest{BaseStats: &stats.Stats{Attack: 100}, Stat: "attack", Target: 200, IV: intPtr(v)})
		require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput), "iv %d", v)
	}

	_, err := svc.TargetLevel(ctx, TargetRequest{BaseStats: &stats.Stats{Attack: 100}, Stat: "attack", Target: 200, IV: intPtr(0)})
	require.NoError(t, err)
}

func TestTargetLevel(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	resp, err := svc.TargetLevel(ctx, TargetRequest{
		BaseStats: &stats.Stats{Attack: 100},
		Stat:      "atk",
		Target:    299,
		EV:        intPtr(252),
	})
	require.NoError(t, err)
	require.True(t, resp.Found)
	require.Equal(t, 100, resp.Level)
	require.Equal(t, stats.Attack, resp.Stat)

	resp, err = svc.TargetLevel(ctx, TargetRequest{BaseStats: &stats.Stats{Attack: 100}, Stat: "attack", Target: 400})
	require.NoError(t, err)
	require.False(t, resp.Found)
	require.Equal(t, 236, resp.AtMaxLevel)

	_, err = svc.TargetLevel(ctx, TargetRequest{Pokemon: "garchomp", Stat: "luck", Target: 10})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestMatchupsByTypes(t *testing.T) {
	resp, err := newTestService().Matchups(context.Background(), MatchupRequest{Types: []string{"Ghost", "dark"}})
	require.NoError(t, err)
	require.Equal(t, []typechart.Type{typechart.Ghost, typechart.Dark}, resp.Types)
	require.Equal(t, []typechart.Matchup{{Type: typechart.Fairy, Multiplier: 2}}, resp.Weaknesses)
	require.Equal(t, []typechart.Type{typechart.Fighting, typechart.Normal, typechart.Psychic}, resp.Immunities)
	require.Len(t, resp.Coverage, 2)
}

func TestMatchupsBySpecies(t *testing.T) {
	resp, err := newTestService().Matchups(context.Background(), MatchupRequest{Pokemon: "garchomp"})
	require.NoError(t, err)
	require.Equal(t, garchomp.Types, resp.Types)
	require.Equal(t, typechart.Matchup{Type: typechart.Ice, Multiplier: 4}, resp.Weaknesses[0])
	require.Equal(t, []typechart.Type{typechart.Electric, typechart.Steel}, resp.Immunities)
}

func TestMatchupsRejectsBadTypes(t *testing.T) {
	svc := newTestService()
	_, err := svc.Matchups(context.Background(), MatchupRequest{Types: []string{"fire", "water", "grass"}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Matchups(context.Background(), MatchupRequest{Types: []string{"shadow"}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Matchups(context.Background(), MatchupRequest{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func intPtr(v int) *int { return &v }

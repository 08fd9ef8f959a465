package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/pikacalc/internal/domain/calculator"
	"github.com/yanqian/pikacalc/internal/domain/roster"
	"github.com/yanqian/pikacalc/internal/domain/stats"
	"github.com/yanqian/pikacalc/internal/domain/typechart"
	apperrors "github.com/yanqian/pikacalc/pkg/errors"
)

var (
	garchomp = roster.Species{
		ID:        445,
		Name:      "Garchomp",
		Types:     []typechart.Type{typechart.Dragon, typechart.Ground},
		BaseStats: stats.Stats{HP: 108, Attack: 130, Defense: 95, SpecialAttack: 80, SpecialDefense: 85, Speed: 102},
	}
	gible = roster.Species{
		ID:        443,
		Name:      "Gible",
		Types:     []typechart.Type{typechart.Dragon, typechart.Ground},
		BaseStats: stats.Stats{HP: 58, Attack: 70, Defense: 45, SpecialAttack: 40, SpecialDefense: 45, Speed: 42},
	}
	pikachu = roster.Species{
		ID:        25,
		Name:      "Pikachu",
		Types:     []typechart.Type{typechart.Electric},
		BaseStats: stats.Stats{HP: 35, Attack: 55, Defense: 40, SpecialAttack: 50, SpecialDefense: 50, Speed: 90},
	}
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand(stubLoader(&stubApp{}))
	require.NotNil(t, cmd)
	assert.Equal(t, "pikacalc", cmd.Use)

	for _, name := range []string{"serve", "stats", "target-level", "matchup", "roster", "natures", "spreads"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
	for _, name := range []string{"initial", "remaining", "search"} {
		sub, _, err := cmd.Find([]string{"roster", name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, &stubApp{}, "natures", "--format", "yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestMatchupGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	out, _, err := execute(t, &stubApp{}, "matchup", "--types", "dragon,ground")
	require.NoError(t, err)
	g.Assert(t, "matchup_types", out)

	out, _, err = execute(t, &stubApp{}, "matchup", "garchomp")
	require.NoError(t, err)
	g.Assert(t, "matchup_garchomp", out)
}

func TestStatsGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	out, _, err := execute(t, &stubApp{}, "stats", "garchomp", "--nature", "jolly", "--spread", "speedyPhysical")
	require.NoError(t, err)
	g.Assert(t, "stats_garchomp", out)
}

func TestStatsJSONWithNamedEVs(t *testing.T) {
	out, _, err := execute(t, &stubApp{}, "stats", "--base", "100,100,100,100,100,100", "--level", "100", "--evs", "atk=252", "--format", "json")
	require.NoError(t, err)

	var body struct {
		Status string                   `json:"status"`
		Data   calculator.StatsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out, &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 299, body.Data.Stats.Attack)
	assert.Equal(t, 256, body.Data.EVRemaining)
}

func TestStatsUnknownPokemon(t *testing.T) {
	out, _, err := execute(t, &stubApp{}, "stats", "missingno", "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, string(out), `"code":"not_found"`)
}

func TestStatsRejectsMalformedVector(t *testing.T) {
	_, _, err := execute(t, &stubApp{}, "stats", "garchomp", "--ivs", "31,31")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTargetLevel(t *testing.T) {
	out, _, err := execute(t, &stubApp{}, "target-level", "--base", "100,100,100,100,100,100", "--stat", "atk", "--target", "299", "--ev", "252")
	require.NoError(t, err)
	assert.Equal(t, "Attack reaches 299 at level 100\n", string(out))

	out, _, err = execute(t, &stubApp{}, "target-level", "--base", "100,100,100,100,100,100", "--stat", "atk", "--target", "300", "--ev", "252")
	require.NoError(t, err)
	assert.Equal(t, "Attack never reaches 300 (level 100 gives 299)\n", string(out))
}

func TestRosterSearchFallsBackToInitial(t *testing.T) {
	app := &stubApp{initial: []roster.Species{pikachu, gible, garchomp}}
	out, _, err := execute(t, app, "roster", "search", "dragon", "--limit", "1")
	require.NoError(t, err)
	assert.Equal(t, "#0443 Gible            Dragon / Ground\n1 pokemon\n", string(out))
	assert.Equal(t, 1, app.initialCalls)
}

func TestRosterRemainingReportsProgress(t *testing.T) {
	app := &stubApp{
		initial:   []roster.Species{pikachu},
		remaining: [][]roster.Species{{pikachu, gible}, {pikachu, gible, garchomp}},
	}
	out, errOut, err := execute(t, app, "roster", "remaining")
	require.NoError(t, err)
	assert.Equal(t, 1, app.remainingFrom)
	assert.Equal(t, "initial: 1 pokemon\nloaded: 2 pokemon\nloaded: 3 pokemon\n", string(errOut))
	assert.Contains(t, string(out), "3 pokemon\n")
}

func TestRosterListingFailure(t *testing.T) {
	app := &stubApp{initialErr: apperrors.Wrap(apperrors.CodeListingError, "failed to load pokemon listing", errors.New("status=503"))}
	_, errOut, err := execute(t, app, "roster", "initial")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, string(errOut), "Error [listing_error]")
}

func TestLoaderFailure(t *testing.T) {
	load := func() (App, func(), error) { return nil, nil, errors.New("invalid config") }
	cmd := NewRootCommand(load)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"matchup", "--types", "fire"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestNaturesDoNotLoadApp(t *testing.T) {
	load := func() (App, func(), error) {
		t.Fatal("natures must not load the app")
		return nil, nil, nil
	}
	cmd := NewRootCommand(load)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"natures"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Adamant  +Attack -Sp. Atk\n")
	assert.Contains(t, out.String(), "Hardy    neutral\n")
}

func execute(t *testing.T, app *stubApp, args ...string) ([]byte, []byte, error) {
	t.Helper()
	cmd := NewRootCommand(stubLoader(app))
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.Bytes(), errOut.Bytes(), err
}

func stubLoader(app *stubApp) AppLoader {
	return func() (App, func(), error) {
		return app, func() {}, nil
	}
}

type stubApp struct {
	initial       []roster.Species
	initialErr    error
	initialCalls  int
	remaining     [][]roster.Species
	remainingFrom int
}

func (a *stubApp) Run(context.Context) error { return nil }

func (a *stubApp) Roster() roster.Service { return a }

func (a *stubApp) Calculator() calculator.Service {
	return calculator.NewService(calculator.Config{DefaultLevel: 50}, a, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (a *stubApp) Initial(context.Context, int) ([]roster.Species, error) {
	a.initialCalls++
	return a.initial, a.initialErr
}

func (a *stubApp) Remaining(_ context.Context, current int, onProgress func([]roster.Species)) ([]roster.Species, error) {
	a.remainingFrom = current
	var last []roster.Species
	for _, snap := range a.remaining {
		onProgress(snap)
		last = snap
	}
	return last, nil
}

func (a *stubApp) StreamRemaining(context.Context, int) (<-chan roster.Snapshot, error) {
	out := make(chan roster.Snapshot)
	close(out)
	return out, nil
}

func (a *stubApp) Lookup(_ context.Context, nameOrID string) (roster.Species, error) {
	if nameOrID == "garchomp" {
		return garchomp, nil
	}
	return roster.Species{}, apperrors.Wrap(apperrors.CodeNotFound, "pokemon not found", nil)
}

func (a *stubApp) Cached(context.Context) []roster.Species { return nil }

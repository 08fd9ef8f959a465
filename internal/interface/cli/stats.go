package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/yanqian/pikacalc/internal/domain/calculator"
	"github.com/yanqian/pikacalc/internal/domain/stats"
)

type statsFlags struct {
	level  int
	nature string
	ivs    string
	evs    string
	spread string
	base   string
}

func newStatsCommand(rootOpts *RootOptions, load AppLoader) *cobra.Command {
	flags := &statsFlags{}
	cmd := &cobra.Command{
		Use:   "stats [pokemon]",
		Short: "Calculate the six final stats of a build",
		Long: `Calculate final stats for a species (name, slug or dex number) or for raw
base stats given with --base. EV problems are reported as warnings; the
calculation always runs.`,
		Example: `  pikacalc stats garchomp --nature jolly --spread speedyPhysical
  pikacalc stats --base 100,100,100,100,100,100 --level 100 --evs atk=252`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(args)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid flags", err)
			}
			f := newFormatter(rootOpts, cmd)
			return withApp(load, func(app App) error {
				resp, err := app.Calculator().Calculate(cmd.Context(), req)
				if err != nil {
					return f.Fail(err)
				}
				return f.Success(resp, func(w io.Writer) { renderStats(w, resp) })
			})
		},
	}

	cmd.Flags().IntVarP(&flags.level, "level", "l", 0, "level 1-100 (default from config)")
	cmd.Flags().StringVarP(&flags.nature, "nature", "n", "", "nature key (default hardy)")
	cmd.Flags().StringVar(&flags.ivs, "ivs", "", "IVs: six values or name=value pairs (default all 31)")
	cmd.Flags().StringVar(&flags.evs, "evs", "", "EVs: six values or name=value pairs (default 0)")
	cmd.Flags().StringVar(&flags.spread, "spread", "", "apply a named EV preset (see `pikacalc spreads`)")
	cmd.Flags().StringVar(&flags.base, "base", "", "raw base stats instead of a species")
	cmd.MarkFlagsMutuallyExclusive("evs", "spread")

	return cmd
}

func (f *statsFlags) request(args []string) (calculator.StatsRequest, error) {
	req := calculator.StatsRequest{Level: f.level, Nature: f.nature}
	if len(args) == 1 {
		req.Pokemon = args[0]
	}
	var err error
	if req.BaseStats, err = parseStatVector(f.base); err != nil {
		return req, err
	}
	if req.IVs, err = parseStatVector(f.ivs); err != nil {
		return req, err
	}
	if req.EVs, err = parseStatVector(f.evs); err != nil {
		return req, err
	}
	if f.spread != "" {
		spread, err := stats.LookupSpread(f.spread)
		if err != nil {
			return req, err
		}
		req.EVs = &spread.EVs
	}
	return req, nil
}

type targetFlags struct {
	stat   string
	target int
	nature string
	iv     int
	ev     int
	base   string
}

func newTargetLevelCommand(rootOpts *RootOptions, load AppLoader) *cobra.Command {
	flags := &targetFlags{}
	cmd := &cobra.Command{
		Use:     "target-level [pokemon]",
		Short:   "Find the lowest level at which a stat reaches a target value",
		Example: `  pikacalc target-level garchomp --stat speed --target 150 --nature jolly --ev 252`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := calculator.TargetRequest{
				Stat:   flags.stat,
				Target: flags.target,
				Nature: flags.nature,
				IV:     &flags.iv,
				EV:     &flags.ev,
			}
			if len(args) == 1 {
				req.Pokemon = args[0]
			}
			base, err := parseStatVector(flags.base)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid flags", err)
			}
			req.BaseStats = base

			f := newFormatter(rootOpts, cmd)
			return withApp(load, func(app App) error {
				resp, err := app.Calculator().TargetLevel(cmd.Context(), req)
				if err != nil {
					return f.Fail(err)
				}
				return f.Success(resp, func(w io.Writer) { renderTarget(w, resp) })
			})
		},
	}

	cmd.Flags().StringVarP(&flags.stat, "stat", "s", "", "stat name (hp, atk, def, spa, spd, spe)")
	cmd.Flags().IntVarP(&flags.target, "target", "t", 0, "stat value to reach")
	cmd.Flags().StringVarP(&flags.nature, "nature", "n", "", "nature key (default hardy)")
	cmd.Flags().IntVar(&flags.iv, "iv", stats.MaxIV, "IV in the stat")
	cmd.Flags().IntVar(&flags.ev, "ev", 0, "EV in the stat")
	cmd.Flags().StringVar(&flags.base, "base", "", "raw base stats instead of a species")
	_ = cmd.MarkFlagRequired("stat")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

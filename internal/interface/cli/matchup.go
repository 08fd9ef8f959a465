package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/yanqian/pikacalc/internal/domain/calculator"
)

func newMatchupCommand(rootOpts *RootOptions, load AppLoader) *cobra.Command {
	var types string
	cmd := &cobra.Command{
		Use:   "matchup [pokemon]",
		Short: "Show weaknesses, resistances, immunities and STAB coverage",
		Example: `  pikacalc matchup garchomp
  pikacalc matchup --types fire,flying`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := calculator.MatchupRequest{Types: splitTypes(types)}
			if len(args) == 1 {
				req.Pokemon = args[0]
			}
			f := newFormatter(rootOpts, cmd)
			return withApp(load, func(app App) error {
				resp, err := app.Calculator().Matchups(cmd.Context(), req)
				if err != nil {
					return f.Fail(err)
				}
				return f.Success(resp, func(w io.Writer) { renderMatchup(w, resp) })
			})
		},
	}
	cmd.Flags().StringVar(&types, "types", "", "one or two defending types, comma separated")
	return cmd
}

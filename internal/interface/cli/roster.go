package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/yanqian/pikacalc/internal/domain/roster"
)

func newRosterCommand(rootOpts *RootOptions, load AppLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Load, complete and search the species roster",
	}
	cmd.AddCommand(newRosterInitialCommand(rootOpts, load))
	cmd.AddCommand(newRosterRemainingCommand(rootOpts, load))
	cmd.AddCommand(newRosterSearchCommand(rootOpts, load))
	return cmd
}

func newRosterInitialCommand(rootOpts *RootOptions, load AppLoader) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "initial",
		Short: "Load the first page of the roster, from cache when possible",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := newFormatter(rootOpts, cmd)
			return withApp(load, func(app App) error {
				list, err := app.Roster().Initial(cmd.Context(), limit)
				if err != nil {
					return f.Fail(err)
				}
				return f.Success(list, func(w io.Writer) { renderRoster(w, list) })
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "number of species (default from config)")
	return cmd
}

func newRosterRemainingCommand(rootOpts *RootOptions, load AppLoader) *cobra.Command {
	var current int
	cmd := &cobra.Command{
		Use:   "remaining",
		Short: "Complete the roster in batches, reporting progress on stderr",
		Long: `Complete the roster from --current up to the full species universe. With
--current 0 the first page is loaded before the background phase starts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := newFormatter(rootOpts, cmd)
			return withApp(load, func(app App) error {
				svc := app.Roster()
				ctx := cmd.Context()
				if current == 0 {
					first, err := svc.Initial(ctx, 0)
					if err != nil {
						return f.Fail(err)
					}
					current = len(first)
					f.Progress("initial: %d pokemon", current)
				}
				list, err := svc.Remaining(ctx, current, func(progress []roster.Species) {
					f.Progress("loaded: %d pokemon", len(progress))
				})
				if err != nil {
					return f.Fail(err)
				}
				return f.Success(list, func(w io.Writer) { renderRoster(w, list) })
			})
		},
	}
	cmd.Flags().IntVar(&current, "current", 0, "number of species already loaded")
	return cmd
}

func newRosterSearchCommand(rootOpts *RootOptions, load AppLoader) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:     "search <query>",
		Short:   "Search the cached roster by name, dex number or type",
		Example: `  pikacalc roster search dragon --limit 5`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			return withApp(load, func(app App) error {
				svc := app.Roster()
				list := svc.Cached(cmd.Context())
				if len(list) == 0 {
					var err error
					if list, err = svc.Initial(cmd.Context(), 0); err != nil {
						return f.Fail(err)
					}
				}
				found := roster.Search(list, args[0])
				if limit > 0 && len(found) > limit {
					found = found[:limit]
				}
				return f.Success(found, func(w io.Writer) { renderRoster(w, found) })
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results (0 = all)")
	return cmd
}

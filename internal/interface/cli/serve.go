package cli

import "github.com/spf13/cobra"

func newServeCommand(load AppLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(load, func(app App) error {
				if err := app.Run(cmd.Context()); err != nil {
					return WrapExitError(ExitFailure, "server stopped", err)
				}
				return nil
			})
		},
	}
}

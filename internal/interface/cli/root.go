// Package cli is the pikacalc command line: a thin adapter over the calculator façade
// and the roster loader, plus the serve command that runs the HTTP adapter.
package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yanqian/pikacalc/internal/domain/calculator"
	"github.com/yanqian/pikacalc/internal/domain/roster"
)

// App is the wired application the commands run against.
type App interface {
	Run(ctx context.Context) error
	Roster() roster.Service
	Calculator() calculator.Service
}

// AppLoader wires the application on demand, so catalog commands never read config
// or open a cache backend. The returned func releases backend resources.
type AppLoader func() (App, func(), error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command.
func NewRootCommand(load AppLoader) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "pikacalc",
		Short: "Pokémon stat calculator",
		Long:  "Calculate final stats, find target levels and inspect type matchups using PokeAPI species data.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(newServeCommand(load))
	cmd.AddCommand(newStatsCommand(opts, load))
	cmd.AddCommand(newTargetLevelCommand(opts, load))
	cmd.AddCommand(newMatchupCommand(opts, load))
	cmd.AddCommand(newRosterCommand(opts, load))
	cmd.AddCommand(newNaturesCommand(opts))
	cmd.AddCommand(newSpreadsCommand(opts))

	return cmd
}

// withApp loads the application, runs fn and releases it.
func withApp(load AppLoader, fn func(App) error) error {
	app, cleanup, err := load()
	if err != nil {
		return WrapExitError(ExitFailure, "failed to initialize", err)
	}
	defer cleanup()
	return fn(app)
}

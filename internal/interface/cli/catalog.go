package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yanqian/pikacalc/internal/domain/stats"
)

func newNaturesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "natures",
		Short: "List the 25 natures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			natures := stats.Natures()
			return newFormatter(rootOpts, cmd).Success(natures, func(w io.Writer) {
				for _, n := range natures {
					if n.Neutral() {
						fmt.Fprintf(w, "%-8s neutral\n", n.Name)
						continue
					}
					fmt.Fprintf(w, "%-8s +%s -%s\n", n.Name, n.Increased.DisplayName(), n.Decreased.DisplayName())
				}
			})
		},
	}
}

func newSpreadsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "spreads",
		Short: "List the EV presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			spreads := stats.EVSpreads()
			return newFormatter(rootOpts, cmd).Success(spreads, func(w io.Writer) {
				for _, s := range spreads {
					fmt.Fprintf(w, "%-16s %s\n", s.Key, formatEVs(s.EVs))
				}
			})
		},
	}
}

package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yanqian/pikacalc/internal/domain/calculator"
	"github.com/yanqian/pikacalc/internal/domain/roster"
	"github.com/yanqian/pikacalc/internal/domain/stats"
	"github.com/yanqian/pikacalc/internal/domain/typechart"
)

func renderStats(w io.Writer, resp calculator.StatsResponse) {
	if resp.Pokemon != nil {
		fmt.Fprintf(w, "%s (#%d) %s\n", resp.Pokemon.Name, resp.Pokemon.ID, joinTypes(resp.Pokemon.Types))
	}
	fmt.Fprintf(w, "Level %d, %s\n", resp.Level, describeNature(resp.Nature))
	fmt.Fprintf(w, "%-8s %4s %3s %3s %5s\n", "Stat", "Base", "IV", "EV", "Value")
	for _, name := range stats.StatNames {
		fmt.Fprintf(w, "%-8s %4d %3d %3d %5d\n",
			name.DisplayName(), resp.BaseStats.Get(name), resp.IVs.Get(name), resp.EVs.Get(name), resp.Stats.Get(name))
	}
	fmt.Fprintf(w, "EVs: %d/%d (%d remaining)\n", resp.EVTotal, stats.MaxTotalEV, resp.EVRemaining)
	for _, msg := range resp.Validation.Errors {
		fmt.Fprintf(w, "warning: %s\n", msg)
	}
}

func renderTarget(w io.Writer, resp calculator.TargetResponse) {
	if !resp.Found {
		fmt.Fprintf(w, "%s never reaches %d (level %d gives %d)\n", resp.Stat.DisplayName(), resp.Target, stats.MaxLevel, resp.AtMaxLevel)
		return
	}
	fmt.Fprintf(w, "%s reaches %d at level %d\n", resp.Stat.DisplayName(), resp.Target, resp.Level)
}

func renderMatchup(w io.Writer, resp calculator.MatchupResponse) {
	if resp.Pokemon != nil {
		fmt.Fprintf(w, "Pokemon:     %s (#%d)\n", resp.Pokemon.Name, resp.Pokemon.ID)
	}
	fmt.Fprintf(w, "Types:       %s\n", joinTypes(resp.Types))
	fmt.Fprintf(w, "Weaknesses:  %s\n", joinMatchups(resp.Weaknesses))
	fmt.Fprintf(w, "Resistances: %s\n", joinMatchups(resp.Resistances))

	immune := make([]string, len(resp.Immunities))
	for i, t := range resp.Immunities {
		immune[i] = typechart.FormatTypeName(t)
	}
	fmt.Fprintf(w, "Immunities:  %s\n", orNone(strings.Join(immune, ", ")))

	fmt.Fprintln(w, "Coverage:")
	for _, c := range resp.Coverage {
		fmt.Fprintf(w, "  %s: %s\n", typechart.FormatTypeName(c.Type), joinMatchups(c.SuperEffective))
	}
}

func renderRoster(w io.Writer, list []roster.Species) {
	for _, sp := range list {
		fmt.Fprintf(w, "#%04d %-16s %s\n", sp.ID, sp.Name, joinTypes(sp.Types))
	}
	fmt.Fprintf(w, "%d pokemon\n", len(list))
}

func describeNature(n stats.Nature) string {
	if n.Neutral() {
		return n.Name + " (neutral)"
	}
	return fmt.Sprintf("%s (+%s, -%s)", n.Name, n.Increased.DisplayName(), n.Decreased.DisplayName())
}

func formatEVs(evs stats.Stats) string {
	var parts []string
	for _, name := range stats.StatNames {
		if v := evs.Get(name); v > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", v, name.DisplayName()))
		}
	}
	return orNone(strings.Join(parts, " / "))
}

func joinTypes(types []typechart.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = typechart.FormatTypeName(t)
	}
	return strings.Join(names, " / ")
}

func joinMatchups(ms []typechart.Matchup) string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = typechart.FormatTypeName(m.Type) + " x" + strconv.FormatFloat(m.Multiplier, 'g', -1, 64)
	}
	return orNone(strings.Join(parts, ", "))
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

package cmd

import (
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/pable/tennisdash/internal/engine"
	"github.com/pable/tennisdash/internal/report"
)

var trendCmd = &cobra.Command{
	Use:   "trend [player...]",
	Short: "Running game-win percentage per player, oldest set first",
	Long: `Prints each player's cumulative game-win percentage after every set they
played. Without arguments every player is shown.`,
	RunE: runTrend,
}

func runTrend(cmd *cobra.Command, args []string) error {
	return withStoredEngine(cmd.Context(), func(eng *engine.Engine) error {
		known := eng.Players()
		for _, name := range args {
			if !slices.Contains(known, name) {
				cWarn.Fprintf(os.Stderr, "warning: no sets recorded for %q\n", name)
			}
		}
		report.PrintTrendTable(os.Stdout, eng.WinPctOverTime(args...))
		return nil
	})
}

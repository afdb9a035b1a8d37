package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/tennisdash/internal/aggregator"
	"github.com/pable/tennisdash/internal/engine"
	"github.com/pable/tennisdash/internal/report"
)

var recentCount int

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Most recent sets, newest first",
	Args:  cobra.NoArgs,
	RunE:  runRecent,
}

func init() {
	recentCmd.Flags().IntVarP(&recentCount, "count", "n", aggregator.DefaultRecent, "number of sets to show")
}

func runRecent(cmd *cobra.Command, args []string) error {
	return withStoredEngine(cmd.Context(), func(eng *engine.Engine) error {
		report.PrintRecent(os.Stdout, eng.Recent(recentCount))
		return nil
	})
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/tennisdash/internal/engine"
	"github.com/pable/tennisdash/internal/model"
	"github.com/pable/tennisdash/internal/report"
)

var playersCmd = &cobra.Command{
	Use:   "players [name...]",
	Short: "List players in order of first appearance, or show named players' totals",
	RunE:  runPlayers,
}

func runPlayers(cmd *cobra.Command, args []string) error {
	return withStoredEngine(cmd.Context(), func(eng *engine.Engine) error {
		names := args
		if len(names) == 0 {
			names = eng.Players()
		}
		stats := make([]model.PlayerStats, 0, len(names))
		for _, n := range names {
			stats = append(stats, eng.PlayerStats(n))
		}
		report.PrintPlayers(os.Stdout, stats)
		return nil
	})
}

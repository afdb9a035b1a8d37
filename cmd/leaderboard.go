package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/tennisdash/internal/engine"
	"github.com/pable/tennisdash/internal/report"
)

var leaderboardPlayer string

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Rank players by set win percentage",
	Args:  cobra.NoArgs,
	RunE:  runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().StringVar(&leaderboardPlayer, "player", "", "highlight one player")
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	return withStoredEngine(cmd.Context(), func(eng *engine.Engine) error {
		report.PrintLeaderboard(os.Stdout, eng.Leaderboard(), leaderboardPlayer)
		return nil
	})
}

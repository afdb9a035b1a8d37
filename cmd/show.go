package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/tennisdash/internal/engine"
	"github.com/pable/tennisdash/internal/report"
)

var showPlayer string

var showCmd = &cobra.Command{
	Use:   "show <id-prefix>",
	Short: "Show the dashboard for a stored snapshot by ID prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showPlayer, "player", "", "highlight one player in the leaderboard")
}

func runShow(cmd *cobra.Command, args []string) error {
	prefix := args[0]

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	snap, err := db.GetSnapshotByPrefix(cmd.Context(), prefix)
	if err != nil {
		return fmt.Errorf("query snapshot: %w", err)
	}
	if snap == nil {
		fmt.Fprintf(os.Stderr, "No snapshot found with ID prefix %q\n", prefix)
		return nil
	}

	eng := engine.New(db, engine.WithFormURL(cfg.Form()))
	eng.Seed(*snap)
	d := eng.Dashboard()

	if showPlayer == "" {
		report.PrintDashboard(os.Stdout, d)
		return nil
	}
	report.PrintSnapshotHeader(os.Stdout, d)
	report.PrintLeaderboard(os.Stdout, d.Leaderboard, showPlayer)
	return nil
}

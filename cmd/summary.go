package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/tennisdash/internal/report"
)

// summaryCmd is the cobra command for displaying a high-level database overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the database",
	Long: `Display aggregate information about the snapshot store: how many
snapshots are kept, the newest one, its set and player counts, the range of
match dates it covers, and the top of its leaderboard.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	ov, err := db.GetOverview(cmd.Context())
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	if ov.Snapshots == 0 {
		fmt.Fprintln(os.Stdout, "No snapshots stored yet. Run 'tennisdash fetch' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n=== Database Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Database        : %s\n", cfg.DBPath)
	fmt.Fprintf(os.Stdout, "  Snapshots kept  : %d\n", ov.Snapshots)
	fmt.Fprintf(os.Stdout, "  Latest snapshot : %s (%s)\n", ov.LatestID, ov.LatestSource)
	fmt.Fprintf(os.Stdout, "  Fetched         : %s\n", ov.LatestFetchedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(os.Stdout, "  Sets recorded   : %d\n", ov.Matches)
	fmt.Fprintf(os.Stdout, "  Players seen    : %d\n", ov.Players)
	if ov.OldestDate != "" {
		fmt.Fprintf(os.Stdout, "  Date range      : %s → %s\n", ov.OldestDate, ov.NewestDate)
	}

	eng, err := storedEngine(cmd.Context(), db)
	if err != nil {
		return err
	}
	board := eng.Leaderboard()
	if len(board) > 5 {
		board = board[:5]
	}
	fmt.Fprintf(os.Stdout, "\n--- Top Players ---\n\n")
	report.PrintLeaderboard(os.Stdout, board, "")
	return nil
}

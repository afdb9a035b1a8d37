package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/tennisdash/internal/report"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "maximum snapshots to list (0 = all)")
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	snaps, err := db.ListSnapshots(cmd.Context(), listLimit)
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}
	if len(snaps) == 0 {
		fmt.Fprintln(os.Stdout, "No snapshots stored yet. Run 'tennisdash fetch' to add one.")
		return nil
	}
	report.PrintSnapshotList(os.Stdout, snaps)
	return nil
}

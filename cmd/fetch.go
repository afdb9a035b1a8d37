package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/tennisdash/internal/config"
	"github.com/pable/tennisdash/internal/engine"
	"github.com/pable/tennisdash/internal/report"
)

var (
	// fetchOffline replays the newest stored rows instead of calling the sheet.
	fetchOffline bool
	// fetchQuiet suppresses the dashboard after a successful fetch.
	fetchQuiet bool
	// fetchVerbose logs refresh details to stderr.
	fetchVerbose bool
)

// fetchCmd reloads the whole sheet, stores a snapshot and prints the dashboard.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch all recorded sets and print the dashboard",
	Long: `Fetches every row from the configured sheet, stores the result as a new
snapshot and prints the leaderboard, head-to-head grids, trend table and recent sets.

The Sheets API is used when SHEETS_API_KEY, SHEETS_SPREADSHEET_ID and
SHEETS_SHEET_NAME are set. Otherwise SHEETS_PUBLISHED_URL (a sheet published to
the web) is scraped. With neither, setup instructions are printed.

Examples:
  tennisdash fetch
  tennisdash fetch --offline      # re-normalize the newest stored rows`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchOffline, "offline", false, "replay the newest stored snapshot instead of fetching")
	fetchCmd.Flags().BoolVarP(&fetchQuiet, "quiet", "q", false, "store the snapshot without printing the dashboard")
	fetchCmd.Flags().BoolVarP(&fetchVerbose, "verbose", "v", false, "log refresh details to stderr")
}

func runFetch(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	var src engine.Source = db
	if !fetchOffline {
		src, err = sourceFor(cfg)
		if errors.Is(err, config.ErrNotConfigured) {
			report.PrintSetup(os.Stdout, cfg.Missing())
			return nil
		}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if fetchVerbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	eng := liveEngine(src, db, logger)

	if _, err := eng.Refresh(cmd.Context()); err != nil {
		retry := "tennisdash fetch"
		if fetchOffline {
			retry += " --offline"
		}
		report.PrintError(os.Stderr, err, retry)
		return reportedError{fmt.Errorf("fetch: %w", err)}
	}

	if fetchQuiet {
		snap, _ := eng.Snapshot()
		fmt.Fprintf(os.Stdout, "Stored snapshot %s (%d sets)\n", shortID(snap.ID), len(snap.Matches))
		return nil
	}
	report.PrintDashboard(os.Stdout, eng.Dashboard())
	return nil
}

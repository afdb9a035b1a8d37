package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/tennisdash/internal/config"
)

var (
	dbPath  string
	envFile string

	// cfg is loaded once per invocation, before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "tennisdash",
	Short: "Tennis match statistics dashboard",
	Long: `Pull recorded tennis sets from a Google Sheet and compute a leaderboard,
head-to-head records, win-percentage trends and a recent-results feed.

Snapshots of every fetch are kept in a local SQLite database so the read-only
commands work offline.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load(envFile)
		if dbPath != "" {
			cfg.DBPath = dbPath
		}
	},
}

// reportedError wraps an error whose details were already printed.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var rep reportedError
		if !errors.As(err, &rep) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite database (default $TENNISDASH_DB or ~/.tennisdash/matches.db)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional .env file to load before reading the environment")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(h2hCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(serveCmd)
}

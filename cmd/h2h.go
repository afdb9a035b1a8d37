package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/tennisdash/internal/aggregator"
	"github.com/pable/tennisdash/internal/engine"
	"github.com/pable/tennisdash/internal/model"
	"github.com/pable/tennisdash/internal/report"
)

var h2hCmd = &cobra.Command{
	Use:   "h2h [player-a player-b]",
	Short: "Head-to-head set and game records",
	Long: `Without arguments, prints the set and game grids for every pair of players.
With two names, prints just that pair, in the order given.`,
	Args: func(cmd *cobra.Command, args []string) error {
		switch {
		case len(args) != 0 && len(args) != 2:
			return fmt.Errorf("expected zero or two player names, got %d", len(args))
		case len(args) == 2 && args[0] == args[1]:
			return fmt.Errorf("head-to-head needs two different players")
		}
		return nil
	},
	RunE: runH2H,
}

func runH2H(cmd *cobra.Command, args []string) error {
	return withStoredEngine(cmd.Context(), func(eng *engine.Engine) error {
		var pairs []model.HeadToHead
		if len(args) == 2 {
			pairs = []model.HeadToHead{eng.HeadToHead(args[0], args[1])}
		} else {
			pairs = aggregator.AllHeadToHead(eng.Matches(), eng.Players())
		}
		if len(pairs) == 0 {
			fmt.Fprintln(os.Stdout, "Not enough players for a head-to-head.")
			return nil
		}
		fmt.Fprintf(os.Stdout, "\n--- Sets ---\n\n")
		report.PrintHeadToHeadSets(os.Stdout, pairs)
		fmt.Fprintf(os.Stdout, "\n--- Games ---\n\n")
		report.PrintHeadToHeadGames(os.Stdout, pairs)
		return nil
	})
}

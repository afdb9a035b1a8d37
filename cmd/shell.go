package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/tennisdash/internal/aggregator"
	"github.com/pable/tennisdash/internal/engine"
	"github.com/pable/tennisdash/internal/model"
	"github.com/pable/tennisdash/internal/report"
	"github.com/pable/tennisdash/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
	cOK       = color.New(color.FgGreen)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long: `Open a persistent session over the newest stored snapshot. 'refresh' pulls
the sheet again when a source is configured. Type 'help' for available commands.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func runShell(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	var src engine.Source = db
	live := false
	if s, err := sourceFor(cfg); err == nil {
		src, live = s, true
	}
	eng := liveEngine(src, db, slog.New(slog.NewTextHandler(io.Discard, nil)))

	snap, err := db.LatestSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("load latest snapshot: %w", err)
	}
	if snap != nil {
		eng.Seed(*snap)
	}

	cGreeting.Println("tennisdash shell")
	switch {
	case snap != nil:
		cMuted.Printf("snapshot %s, %d sets, %d players\n", shortID(snap.ID), len(snap.Matches), len(eng.Players()))
	case live:
		cWarn.Println("no snapshot stored yet; type 'refresh' to fetch one")
	default:
		cWarn.Println("no snapshot stored and no source configured; run 'tennisdash fetch' for setup help")
	}
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("tennisdash")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		name, args := tokens[0], tokens[1:]

		switch name {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "refresh":
			shellRefresh(ctx, eng)
		case "list":
			shellList(ctx, db)
		default:
			if _, ok := eng.Snapshot(); !ok {
				cWarn.Fprintln(os.Stderr, "no data loaded; type 'refresh' first")
				continue
			}
			shellQuery(eng, name, args)
		}
	}
	return nil
}

// shellQuery handles the commands that read the loaded snapshot.
func shellQuery(eng *engine.Engine, name string, args []string) {
	switch name {
	case "dashboard":
		report.PrintDashboard(os.Stdout, eng.Dashboard())
	case "leaderboard":
		focus := ""
		if len(args) > 0 {
			focus = strings.Join(args, " ")
		}
		report.PrintLeaderboard(os.Stdout, eng.Leaderboard(), focus)
	case "h2h":
		var pairs []model.HeadToHead
		switch len(args) {
		case 0:
			pairs = aggregator.AllHeadToHead(eng.Matches(), eng.Players())
		case 2:
			pairs = []model.HeadToHead{eng.HeadToHead(args[0], args[1])}
		default:
			cError.Fprintln(os.Stderr, "usage: h2h [<player-a> <player-b>]")
			return
		}
		cHeader.Fprintf(os.Stdout, "\n--- Sets ---\n\n")
		report.PrintHeadToHeadSets(os.Stdout, pairs)
		cHeader.Fprintf(os.Stdout, "\n--- Games ---\n\n")
		report.PrintHeadToHeadGames(os.Stdout, pairs)
	case "trend":
		report.PrintTrendTable(os.Stdout, eng.WinPctOverTime(args...))
	case "recent":
		n := aggregator.DefaultRecent
		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 1 {
				cError.Fprintln(os.Stderr, "usage: recent [<count>]")
				return
			}
			n = v
		}
		report.PrintRecent(os.Stdout, eng.Recent(n))
	case "players":
		names := eng.Players()
		stats := make([]model.PlayerStats, 0, len(names))
		for _, p := range names {
			stats = append(stats, eng.PlayerStats(p))
		}
		report.PrintPlayers(os.Stdout, stats)
	default:
		cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", name)
	}
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"dashboard", "every section for the loaded snapshot"},
		{"leaderboard [player]", "players ranked by set win %, optionally highlighting one"},
		{"h2h [<a> <b>]", "head-to-head sets and games, all pairs or one"},
		{"trend [player...]", "running game-win % after every set"},
		{"recent [n]", "the n newest sets (default 10)"},
		{"players", "players in order of first appearance"},
		{"list", "stored snapshots"},
		{"refresh", "fetch the sheet again and store a new snapshot"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-26s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func shellRefresh(ctx context.Context, eng *engine.Engine) {
	snap, err := eng.Refresh(ctx)
	if err != nil {
		report.PrintError(os.Stderr, err, "refresh")
		return
	}
	cOK.Printf("snapshot %s: %d sets, %d players\n", shortID(snap.ID), len(snap.Matches), len(eng.Players()))
}

func shellList(ctx context.Context, db *storage.DB) {
	snaps, err := db.ListSnapshots(ctx, 20)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(snaps) == 0 {
		cMuted.Println("No snapshots stored yet.")
		return
	}
	report.PrintSnapshotList(os.Stdout, snaps)
}

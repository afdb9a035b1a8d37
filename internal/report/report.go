package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/tennisdash/internal/model"
)

// newTable returns a table with right-aligned rows and centred headers.
func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// PrintSnapshotHeader prints a one-line summary of the snapshot being shown.
func PrintSnapshotHeader(w io.Writer, d model.Dashboard) {
	id := d.SnapshotID
	if len(id) > 8 {
		id = id[:8]
	}
	fmt.Fprintf(w, "\nSnapshot: %s  |  Fetched: %s  |  Source: %s  |  Players: %d\n\n",
		id, d.FetchedAt.Local().Format("2006-01-02 15:04"), d.Source, len(d.Players))
}

// PrintLeaderboard prints players ranked by set win percentage.
// If focus is non-empty, that player's row is marked with ">".
func PrintLeaderboard(w io.Writer, board []model.PlayerStats, focus string) {
	table := newTable(w)
	table.Header(" ", "RANK", "PLAYER", "SETS_W", "SETS_L", "WIN%", "GAMES_W", "GAMES_L", "GAME_WIN%", "AVG_GAMES")

	for i, s := range board {
		marker := " "
		if focus != "" && s.Name == focus {
			marker = ">"
		}
		table.Append(
			marker,
			strconv.Itoa(i+1),
			s.Name,
			strconv.Itoa(s.Wins),
			strconv.Itoa(s.Losses),
			fmt.Sprintf("%.1f%%", s.WinPct),
			strconv.Itoa(s.GamesWon),
			strconv.Itoa(s.GamesLost),
			gameWinPct(s),
			fmt.Sprintf("%.1f", s.AvgGamesWon),
		)
	}
	table.Render()
}

func gameWinPct(s model.PlayerStats) string {
	if s.GamesWon+s.GamesLost == 0 {
		return "—"
	}
	return fmt.Sprintf("%.1f%%", s.GameWinPct())
}

// PrintHeadToHeadSets prints set wins for every pair.
func PrintHeadToHeadSets(w io.Writer, pairs []model.HeadToHead) {
	table := newTable(w)
	table.Header("PLAYER", "SETS", "VS", "SETS", "PLAYER")
	for _, h := range pairs {
		table.Append(h.Player1, strconv.Itoa(h.Player1Wins), "–", strconv.Itoa(h.Player2Wins), h.Player2)
	}
	table.Render()
}

// PrintHeadToHeadGames prints game totals for every pair.
func PrintHeadToHeadGames(w io.Writer, pairs []model.HeadToHead) {
	table := newTable(w)
	table.Header("PLAYER", "GAMES", "VS", "GAMES", "PLAYER")
	for _, h := range pairs {
		table.Append(h.Player1, strconv.Itoa(h.Player1Games), "–", strconv.Itoa(h.Player2Games), h.Player2)
	}
	table.Render()
}

// PrintTrendTable prints running game-win % per player, one row per
// participation index. Players with no sets get an empty column.
func PrintTrendTable(w io.Writer, trends []model.PlayerTrend) {
	maxLen := 0
	for _, t := range trends {
		if len(t.History) > maxLen {
			maxLen = len(t.History)
		}
	}

	table := newTable(w)
	header := []any{"#"}
	for _, t := range trends {
		header = append(header, t.Name)
	}
	table.Header(header...)

	for i := 0; i < maxLen; i++ {
		row := []any{strconv.Itoa(i + 1)}
		for _, t := range trends {
			if i < len(t.History) {
				p := t.History[i]
				row = append(row, fmt.Sprintf("%s  %.1f%%", p.Date, p.WinPct))
			} else {
				row = append(row, "")
			}
		}
		table.Append(row...)
	}
	table.Render()
}

// PrintRecent prints the recent-sets feed, newest first. Winners are starred.
func PrintRecent(w io.Writer, matches []model.Match) {
	table := newTable(w)
	table.Header("DATE", "PLAYER 1", "SCORE", "PLAYER 2")
	for _, m := range matches {
		p1, p2 := m.Player1, m.Player2
		switch m.Winner() {
		case "":
		case m.Player1:
			p1 = "*" + p1
		default:
			p2 = "*" + p2
		}
		table.Append(m.Date, p1, fmt.Sprintf("%d - %d", m.Score1, m.Score2), p2)
	}
	table.Render()
}

// PrintDashboard prints every section for one snapshot.
func PrintDashboard(w io.Writer, d model.Dashboard) {
	PrintSnapshotHeader(w, d)

	fmt.Fprintf(w, "--- Leaderboard ---\n\n")
	PrintLeaderboard(w, d.Leaderboard, "")

	if len(d.HeadToHead) > 0 {
		fmt.Fprintf(w, "\n--- Head-to-Head Sets ---\n\n")
		PrintHeadToHeadSets(w, d.HeadToHead)
		fmt.Fprintf(w, "\n--- Head-to-Head Games ---\n\n")
		PrintHeadToHeadGames(w, d.HeadToHead)
	}

	fmt.Fprintf(w, "\n--- Game Win %% Over Time ---\n\n")
	PrintTrendTable(w, d.Trends)

	fmt.Fprintf(w, "\n--- Recent Sets ---\n\n")
	PrintRecent(w, d.Recent)

	if d.FormURL != "" {
		fmt.Fprintf(w, "\nAdd a score: %s\n", d.FormURL)
	}
}

// PrintSnapshotList prints stored snapshots, newest first.
func PrintSnapshotList(w io.Writer, snaps []model.SnapshotSummary) {
	table := newTable(w)
	table.Header("ID", "FETCHED", "ROWS", "MATCHES", "SOURCE")
	for _, s := range snaps {
		table.Append(
			s.ID,
			s.FetchedAt.Local().Format("2006-01-02 15:04:05"),
			strconv.Itoa(s.RowCount),
			strconv.Itoa(s.MatchCount),
			s.Source,
		)
	}
	table.Render()
}

// PrintPlayers prints one row per player in the order given.
func PrintPlayers(w io.Writer, stats []model.PlayerStats) {
	table := newTable(w)
	table.Header("#", "PLAYER", "SETS", "WIN%", "GAMES", "GAME_WIN%")
	for i, s := range stats {
		table.Append(
			strconv.Itoa(i+1),
			s.Name,
			strconv.Itoa(s.Played()),
			fmt.Sprintf("%.1f%%", s.WinPct),
			strconv.Itoa(s.GamesWon+s.GamesLost),
			gameWinPct(s),
		)
	}
	table.Render()
}

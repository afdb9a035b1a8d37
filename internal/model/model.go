package model

import "time"

// Match is one recorded set between two players.
// Scores are game tallies; a missing or unparseable cell becomes 0.
type Match struct {
	Date    string `json:"date"`
	Player1 string `json:"player1"`
	Score1  int    `json:"score1"`
	Player2 string `json:"player2"`
	Score2  int    `json:"score2"`
}

// Involves reports whether name occupies either slot.
func (m Match) Involves(name string) bool {
	return m.Player1 == name || m.Player2 == name
}

// Winner returns the strictly higher-scoring side, or "" for a tie.
func (m Match) Winner() string {
	switch {
	case m.Score1 > m.Score2:
		return m.Player1
	case m.Score2 > m.Score1:
		return m.Player2
	default:
		return ""
	}
}

// PlayerStats holds one player's set and game totals across all matches.
type PlayerStats struct {
	Name        string  `json:"name"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	WinPct      float64 `json:"win_pct"`
	GamesWon    int     `json:"games_won"`
	GamesLost   int     `json:"games_lost"`
	AvgGamesWon float64 `json:"avg_games_won"`
}

// Played returns the number of sets the player took part in.
func (s *PlayerStats) Played() int {
	return s.Wins + s.Losses
}

// GameWinPct is the share of individual games won, unrounded.
func (s *PlayerStats) GameWinPct() float64 {
	total := s.GamesWon + s.GamesLost
	if total == 0 {
		return 0
	}
	return float64(s.GamesWon) / float64(total) * 100
}

// HeadToHead holds set wins and game totals between exactly two players.
// Player1/Player2 follow the order the pair was requested in, not match slots.
type HeadToHead struct {
	Player1      string `json:"player1"`
	Player2      string `json:"player2"`
	Player1Wins  int    `json:"player1_wins"`
	Player2Wins  int    `json:"player2_wins"`
	Player1Games int    `json:"player1_games"`
	Player2Games int    `json:"player2_games"`
}

// TrendPoint is one participation in a player's running game-win history.
type TrendPoint struct {
	Date   string  `json:"date"`
	WinPct float64 `json:"win_pct"`
}

// PlayerTrend is the chronological game-win history of one player.
type PlayerTrend struct {
	Name    string       `json:"name"`
	History []TrendPoint `json:"history"`
}

// Snapshot is one full reload of the match feed.
// Matches are stored newest first; Rows keep the raw cells including the header.
type Snapshot struct {
	ID        string     `json:"id"`
	Source    string     `json:"source"`
	FetchedAt time.Time  `json:"fetched_at"`
	Rows      [][]string `json:"-"`
	Matches   []Match    `json:"matches"`
}

// SnapshotSummary is a lightweight record for list/show commands.
type SnapshotSummary struct {
	ID         string
	Source     string
	FetchedAt  time.Time
	RowCount   int
	MatchCount int
}

// Dashboard is everything the presentation layers render for one snapshot.
type Dashboard struct {
	SnapshotID  string        `json:"snapshot_id"`
	Source      string        `json:"source"`
	FetchedAt   time.Time     `json:"fetched_at"`
	Players     []string      `json:"players"`
	Leaderboard []PlayerStats `json:"leaderboard"`
	HeadToHead  []HeadToHead  `json:"head_to_head"`
	Trends      []PlayerTrend `json:"trends"`
	Recent      []Match       `json:"recent"`
	FormURL     string        `json:"form_url,omitempty"`
}

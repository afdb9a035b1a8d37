package aggregator

import (
	"math"
	"sort"

	"github.com/pable/tennisdash/internal/model"
)

// DefaultRecent is the size of the recent-sets feed.
const DefaultRecent = 10

// Players returns the distinct non-empty player names across both slots, in
// order of first appearance. Identity is exact string equality.
func Players(matches []model.Match) []string {
	seen := make(map[string]struct{})
	var players []string
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		players = append(players, name)
	}
	for _, m := range matches {
		add(m.Player1)
		add(m.Player2)
	}
	return players
}

// PlayerStats computes set wins/losses and game totals for one player.
//
// A set is a win only when the player's score is strictly greater than the
// opponent's; anything else, including a tie, is a loss. WinPct and AvgGamesWon
// are rounded to one decimal and are exactly 0 when no sets were played.
func PlayerStats(matches []model.Match, name string) model.PlayerStats {
	s := model.PlayerStats{Name: name}
	for _, m := range matches {
		if !m.Involves(name) {
			continue
		}
		own, opp := m.Score1, m.Score2
		if m.Player1 != name {
			own, opp = opp, own
		}
		s.GamesWon += own
		s.GamesLost += opp
		if own > opp {
			s.Wins++
		} else {
			s.Losses++
		}
	}
	if played := s.Played(); played > 0 {
		s.WinPct = round1(float64(s.Wins) / float64(played) * 100)
		s.AvgGamesWon = round1(float64(s.GamesWon) / float64(played))
	}
	return s
}

// HeadToHead computes set wins and game totals between a and b, scanning only
// matches between exactly that pair. Slot orientation is resolved per match.
// A tied set credits neither side.
func HeadToHead(matches []model.Match, a, b string) model.HeadToHead {
	h := model.HeadToHead{Player1: a, Player2: b}
	for _, m := range matches {
		var aScore, bScore int
		switch {
		case m.Player1 == a && m.Player2 == b:
			aScore, bScore = m.Score1, m.Score2
		case m.Player1 == b && m.Player2 == a:
			aScore, bScore = m.Score2, m.Score1
		default:
			continue
		}
		h.Player1Games += aScore
		h.Player2Games += bScore
		switch {
		case aScore > bScore:
			h.Player1Wins++
		case bScore > aScore:
			h.Player2Wins++
		}
	}
	return h
}

// HeadToHeadSets returns only the set-win counts for the pair (a, b).
func HeadToHeadSets(matches []model.Match, a, b string) (aWins, bWins int) {
	h := HeadToHead(matches, a, b)
	return h.Player1Wins, h.Player2Wins
}

// HeadToHeadGames returns only the game totals for the pair (a, b).
func HeadToHeadGames(matches []model.Match, a, b string) (aGames, bGames int) {
	h := HeadToHead(matches, a, b)
	return h.Player1Games, h.Player2Games
}

// Leaderboard returns stats for every player, sorted by set win percentage
// descending. Ties keep first-appearance order.
func Leaderboard(matches []model.Match) []model.PlayerStats {
	players := Players(matches)
	board := make([]model.PlayerStats, 0, len(players))
	for _, p := range players {
		board = append(board, PlayerStats(matches, p))
	}
	sort.SliceStable(board, func(i, j int) bool {
		return board[i].WinPct > board[j].WinPct
	})
	return board
}

// Pair is an unordered pair of players in listing order.
type Pair struct{ A, B string }

// Pairs returns every (players[i], players[j]) with i < j.
func Pairs(players []string) []Pair {
	var out []Pair
	for i := 0; i < len(players); i++ {
		for j := i + 1; j < len(players); j++ {
			out = append(out, Pair{players[i], players[j]})
		}
	}
	return out
}

// AllHeadToHead computes HeadToHead for every pair of players.
func AllHeadToHead(matches []model.Match, players []string) []model.HeadToHead {
	pairs := Pairs(players)
	out := make([]model.HeadToHead, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, HeadToHead(matches, p.A, p.B))
	}
	return out
}

// Recent returns up to n of the newest matches. Matches must be newest first.
func Recent(matches []model.Match, n int) []model.Match {
	if n < 0 {
		n = 0
	}
	if n > len(matches) {
		n = len(matches)
	}
	out := make([]model.Match, n)
	copy(out, matches[:n])
	return out
}

// round1 rounds half away from zero to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

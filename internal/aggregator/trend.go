package aggregator

import "github.com/pable/tennisdash/internal/model"

// WinPctOverTime replays matches oldest first and records, for each requested
// player, one point per set played: the running share of games won so far.
//
// This is a game-win percentage, not the set-win percentage of PlayerStats.
// matches must be newest first (storage order); it is not modified. Output
// follows the order of players; a player with no sets gets an empty history.
func WinPctOverTime(matches []model.Match, players []string) []model.PlayerTrend {
	type running struct {
		won, lost int
		history   []model.TrendPoint
	}
	byName := make(map[string]*running, len(players))
	for _, p := range players {
		if _, ok := byName[p]; !ok {
			byName[p] = &running{history: []model.TrendPoint{}}
		}
	}

	record := func(r *running, date string, won, lost int) {
		r.won += won
		r.lost += lost
		pct := 0.0
		if total := r.won + r.lost; total > 0 {
			pct = round1(float64(r.won) / float64(total) * 100)
		}
		r.history = append(r.history, model.TrendPoint{Date: date, WinPct: pct})
	}

	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		if r, ok := byName[m.Player1]; ok {
			record(r, m.Date, m.Score1, m.Score2)
		}
		if r, ok := byName[m.Player2]; ok {
			record(r, m.Date, m.Score2, m.Score1)
		}
	}

	out := make([]model.PlayerTrend, 0, len(players))
	for _, p := range players {
		out = append(out, model.PlayerTrend{Name: p, History: byName[p].history})
	}
	return out
}

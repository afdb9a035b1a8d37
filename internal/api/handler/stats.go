package handler

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pable/tennisdash/internal/aggregator"
	"github.com/pable/tennisdash/internal/api/respond"
)

const maxRecent = 100

// GetDashboard returns every view for the current snapshot.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, h.eng.Dashboard())
}

// GetPlayers lists distinct player names in first-appearance order.
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	players := h.eng.Players()
	if players == nil {
		players = []string{}
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"players": players,
		"count":   len(players),
	})
}

// GetPlayer returns one player's set and game totals.
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	name := chi.URLParam(r, "name")
	if !slices.Contains(h.eng.Players(), name) {
		respond.WriteError(w, http.StatusNotFound, "PLAYER_NOT_FOUND", "no matches for player "+strconv.Quote(name))
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, h.eng.PlayerStats(name))
}

// GetLeaderboard returns players ranked by set win percentage.
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, h.eng.Leaderboard())
}

// GetHeadToHead returns set wins and game totals between two players.
func (h *Handler) GetHeadToHead(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	a, b := chi.URLParam(r, "a"), chi.URLParam(r, "b")
	if a == b {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PAIR", "head-to-head needs two different players")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, h.eng.HeadToHead(a, b))
}

// GetTrend returns running game-win histories. Repeat ?player= to pick
// players; all players are returned when none is given.
func (h *Handler) GetTrend(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	players := r.URL.Query()["player"]
	respond.WriteJSONObject(w, http.StatusOK, h.eng.WinPctOverTime(players...))
}

// GetRecent returns the newest matches. limit defaults to the dashboard feed
// size and is capped at maxRecent.
func (h *Handler) GetRecent(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	limit := aggregator.DefaultRecent
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 || n > maxRecent {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_LIMIT",
				"limit must be an integer between 1 and "+strconv.Itoa(maxRecent))
			return
		}
		limit = n
	}
	respond.WriteJSONObject(w, http.StatusOK, h.eng.Recent(limit))
}

// PostRefresh reloads the feed and reports the new snapshot.
func (h *Handler) PostRefresh(w http.ResponseWriter, r *http.Request) {
	if h.eng == nil {
		h.ready(w)
		return
	}
	snap, err := h.eng.Refresh(r.Context())
	if err != nil {
		respond.WriteError(w, http.StatusBadGateway, "REFRESH_FAILED", err.Error())
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"snapshot_id": snap.ID,
		"source":      snap.Source,
		"fetched_at":  snap.FetchedAt,
		"rows":        len(snap.Rows),
		"matches":     len(snap.Matches),
	})
}

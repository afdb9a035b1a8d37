// Package handler provides HTTP handlers for the dashboard page and the JSON API.
// Every handler reads the engine's current snapshot; nothing is cached here.
package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pable/tennisdash/internal/api/respond"
	"github.com/pable/tennisdash/internal/config"
	"github.com/pable/tennisdash/internal/engine"
)

// Handler holds shared dependencies for all endpoint handlers.
// eng is nil when no data source is configured.
type Handler struct {
	eng    *engine.Engine
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(eng *engine.Engine, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{eng: eng, cfg: cfg, logger: logger}
}

// HealthCheck returns basic health status plus the snapshot the engine holds.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":     "healthy",
		"configured": h.eng != nil,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	}
	if h.eng != nil {
		if snap, ok := h.eng.Snapshot(); ok {
			body["snapshot_id"] = snap.ID
			body["fetched_at"] = snap.FetchedAt.UTC().Format(time.RFC3339)
			body["matches"] = len(snap.Matches)
		}
		if err := h.eng.LastError(); err != nil {
			body["last_error"] = err.Error()
		}
	}
	respond.WriteJSONObject(w, http.StatusOK, body)
}

// ready writes an error and returns false when there is nothing to query yet.
func (h *Handler) ready(w http.ResponseWriter) bool {
	if h.eng == nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "NOT_CONFIGURED",
			"data source not configured; set "+joinMissing(h.cfg))
		return false
	}
	if _, ok := h.eng.Snapshot(); !ok {
		msg := "no data loaded yet"
		if err := h.eng.LastError(); err != nil {
			msg = err.Error()
		}
		respond.WriteError(w, http.StatusServiceUnavailable, "NO_DATA", msg)
		return false
	}
	return true
}

func joinMissing(cfg *config.Config) string {
	missing := cfg.Missing()
	if len(missing) == 0 {
		return "SHEETS_PUBLISHED_URL"
	}
	return strings.Join(missing, ", ")
}

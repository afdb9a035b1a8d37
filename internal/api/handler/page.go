package handler

import (
	"bytes"
	"net/http"

	"github.com/pable/tennisdash/internal/web"
)

// Page serves the HTML dashboard, or the setup view / error panel when there is
// nothing to show.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	var err error
	switch {
	case h.eng == nil:
		err = web.RenderSetup(&buf, h.cfg.Missing())
	default:
		if _, ok := h.eng.Snapshot(); ok {
			err = web.RenderDashboard(&buf, h.eng.Dashboard())
		} else {
			msg := "No data loaded yet."
			if lastErr := h.eng.LastError(); lastErr != nil {
				msg = lastErr.Error()
			}
			err = web.RenderError(&buf, msg)
		}
	}
	if err != nil {
		h.logger.Error("render page", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = buf.WriteTo(w)
}

// RefreshPage refreshes from the page's retry/refresh button. The outcome is
// shown by the page it redirects to.
func (h *Handler) RefreshPage(w http.ResponseWriter, r *http.Request) {
	if h.eng != nil {
		if _, err := h.eng.Refresh(r.Context()); err != nil {
			h.logger.Warn("refresh from page failed", "error", err)
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

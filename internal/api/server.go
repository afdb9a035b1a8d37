// Package api serves the HTML dashboard, the JSON API and the live-update
// websocket from one chi router.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"

	"github.com/pable/tennisdash/internal/api/handler"
	"github.com/pable/tennisdash/internal/config"
	"github.com/pable/tennisdash/internal/engine"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
// eng may be nil, in which case the page shows setup instructions and the API
// answers 503.
func NewRouter(eng *engine.Engine, hub *Hub, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5))

	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type"},
		ExposedHeaders:   []string{"X-Process-Time"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	h := handler.New(eng, cfg, logger)

	// --- Routes ---
	r.Get("/", h.Page)
	r.Post("/refresh", h.RefreshPage)
	r.Get("/health", h.HealthCheck)
	if hub != nil {
		r.Get("/ws", hub.ServeWS)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/dashboard", h.GetDashboard)
		r.Get("/leaderboard", h.GetLeaderboard)
		r.Get("/players", h.GetPlayers)
		r.Get("/players/{name}", h.GetPlayer)
		r.Get("/h2h/{a}/{b}", h.GetHeadToHead)
		r.Get("/trend", h.GetTrend)
		r.Get("/matches/recent", h.GetRecent)
		r.Post("/refresh", h.PostRefresh)
	})

	return r
}

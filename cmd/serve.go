package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/tennisdash/internal/api"
	"github.com/pable/tennisdash/internal/config"
	"github.com/pable/tennisdash/internal/engine"
)

var (
	serveHost     string
	servePort     int
	serveInterval time.Duration
	serveDebug    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTML dashboard and JSON API",
	Long: `Starts an HTTP server with the dashboard at / and a JSON API under /api/v1.
Browsers connected to the page reload when a refresh completes.

The newest stored snapshot is shown immediately; a fresh fetch runs in the
background on startup and then every --refresh-interval (0 disables it).
Without a configured source the page shows setup instructions.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (default $API_HOST or 0.0.0.0)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default $API_PORT or 8080)")
	serveCmd.Flags().DurationVar(&serveInterval, "refresh-interval", 0, "auto refresh period, e.g. 5m (default $REFRESH_INTERVAL seconds)")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "debug logging")
}

func runServe(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if serveDebug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if serveHost != "" {
		cfg.APIHost = serveHost
	}
	if servePort != 0 {
		cfg.APIPort = servePort
	}
	if cmd.Flags().Changed("refresh-interval") {
		cfg.RefreshInterval = serveInterval
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	hub := api.NewHub(logger, cfg.CORSAllowOrigins)
	defer hub.Close()

	var eng *engine.Engine
	src, err := sourceFor(cfg)
	switch {
	case errors.Is(err, config.ErrNotConfigured):
		logger.Warn("Data source not configured, serving setup page", "missing", cfg.Missing())
	default:
		eng = liveEngine(src, db, logger, engine.WithRenderer(hub))
		if snap, err := db.LatestSnapshot(ctx); err != nil {
			logger.Warn("Could not load stored snapshot", "error", err)
		} else if snap != nil {
			eng.Seed(*snap)
			logger.Info("Seeded from stored snapshot", "snapshot", snap.ID, "matches", len(snap.Matches))
		}
		go func() {
			// Errors are logged by the engine and shown on the page.
			_, _ = eng.Refresh(ctx)
			eng.StartAutoRefresh(ctx, cfg.RefreshInterval)
		}()
	}

	router := api.NewRouter(eng, hub, cfg, logger)

	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting tennis dashboard", "addr", addr, "db", cfg.DBPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
	return nil
}

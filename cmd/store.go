package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pable/tennisdash/internal/config"
	"github.com/pable/tennisdash/internal/engine"
	"github.com/pable/tennisdash/internal/pubhtml"
	"github.com/pable/tennisdash/internal/sheets"
	"github.com/pable/tennisdash/internal/storage"
)

var errNoSnapshot = errors.New("no snapshot stored yet. Run 'tennisdash fetch' first")

// openStore opens the snapshot database, creating its directory if needed.
func openStore() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// sourceFor picks the row source: the Sheets API when fully configured, the
// published HTML page otherwise. It returns config.ErrNotConfigured if neither
// is usable.
func sourceFor(c *config.Config) (engine.Source, error) {
	switch {
	case c.UsesAPI():
		return sheets.NewClient(c.SheetsBaseURL, c.APIKey, c.SpreadsheetID, c.SheetName), nil
	case c.UsesPublished():
		return pubhtml.New(c.PublishedURL), nil
	default:
		return nil, config.ErrNotConfigured
	}
}

// liveEngine builds an engine that refreshes from src and persists into db.
func liveEngine(src engine.Source, db *storage.DB, logger *slog.Logger, opts ...engine.Option) *engine.Engine {
	opts = append([]engine.Option{
		engine.WithStore(db, cfg.SnapshotKeep),
		engine.WithFormURL(cfg.Form()),
		engine.WithLogger(logger),
	}, opts...)
	return engine.New(src, opts...)
}

// storedEngine returns an engine seeded with the newest stored snapshot. Its
// source is the store itself, so a refresh replays the stored rows.
func storedEngine(ctx context.Context, db *storage.DB) (*engine.Engine, error) {
	snap, err := db.LatestSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load latest snapshot: %w", err)
	}
	if snap == nil {
		return nil, errNoSnapshot
	}
	eng := engine.New(db, engine.WithFormURL(cfg.Form()))
	eng.Seed(*snap)
	return eng, nil
}

// withStoredEngine opens the store and runs fn against the latest snapshot.
func withStoredEngine(ctx context.Context, fn func(*engine.Engine) error) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	eng, err := storedEngine(ctx, db)
	if err != nil {
		return err
	}
	return fn(eng)
}

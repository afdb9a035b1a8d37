// Package engine owns the current match snapshot and answers statistics queries
// against it. A refresh reloads the whole feed; queries are pure reads of the
// snapshot that was current when they started.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/pable/tennisdash/internal/aggregator"
	"github.com/pable/tennisdash/internal/model"
	"github.com/pable/tennisdash/internal/normalize"
)

// refreshTimeout bounds a shared fetch, which outlives any single caller.
const refreshTimeout = 30 * time.Second

// ErrNoData is returned when the feed has fewer than two rows (header plus one match).
var ErrNoData = errors.New("no data found in sheet")

// Source supplies raw sheet rows, header row first.
type Source interface {
	Name() string
	FetchRows(ctx context.Context) ([][]string, error)
}

// Store persists snapshots after a successful refresh.
type Store interface {
	SaveSnapshot(ctx context.Context, snap model.Snapshot) error
}

// pruner is implemented by stores that can drop old snapshots.
type pruner interface {
	PruneSnapshots(ctx context.Context, keep int) (int64, error)
}

// Renderer is notified after every refresh attempt.
type Renderer interface {
	OnRefresh(snap model.Snapshot)
	OnError(err error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithStore persists each refreshed snapshot, keeping at most keep of them
// (0 keeps everything).
func WithStore(s Store, keep int) Option {
	return func(e *Engine) {
		e.store = s
		e.keep = keep
	}
}

// WithRenderer adds a refresh observer.
func WithRenderer(r Renderer) Option {
	return func(e *Engine) { e.renderers = append(e.renderers, r) }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithFormURL sets the data-entry form URL surfaced in the dashboard.
func WithFormURL(u string) Option {
	return func(e *Engine) { e.formURL = u }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// Engine is the match statistics engine.
type Engine struct {
	src       Source
	store     Store
	keep      int
	renderers []Renderer
	logger    *slog.Logger
	formURL   string
	now       func() time.Time

	group singleflight.Group

	mu      sync.RWMutex
	snap    *model.Snapshot
	lastErr error
}

// New creates an Engine reading from src.
func New(src Source, opts ...Option) *Engine {
	e := &Engine{
		src:    src,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Seed installs a previously stored snapshot without fetching.
func (e *Engine) Seed(snap model.Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.snap = &snap
}

// Refresh fetches the full feed, normalizes it and swaps it in.
//
// Calls that arrive while a refresh is in flight join it and receive its
// result instead of starting a second fetch. On failure the previous snapshot
// stays current.
//
// The fetch itself is not tied to ctx: a caller that gives up gets ctx.Err()
// while the fetch finishes for everyone else.
func (e *Engine) Refresh(ctx context.Context) (model.Snapshot, error) {
	ch := e.group.DoChan("refresh", func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		return e.refresh(fctx)
	})
	select {
	case <-ctx.Done():
		return model.Snapshot{}, ctx.Err()
	case res := <-ch:
		if res.Shared {
			e.logger.Debug("refresh coalesced with in-flight fetch")
		}
		if res.Err != nil {
			return model.Snapshot{}, res.Err
		}
		return res.Val.(model.Snapshot), nil
	}
}

func (e *Engine) refresh(ctx context.Context) (model.Snapshot, error) {
	start := e.now()
	rows, err := e.src.FetchRows(ctx)
	if err != nil {
		return model.Snapshot{}, e.fail(fmt.Errorf("fetch rows: %w", err))
	}
	if len(rows) < 2 {
		return model.Snapshot{}, e.fail(ErrNoData)
	}

	snap := model.Snapshot{
		ID:        uuid.NewString(),
		Source:    e.src.Name(),
		FetchedAt: e.now(),
		Rows:      rows,
		Matches:   normalize.Rows(rows),
	}

	if e.store != nil {
		if err := e.store.SaveSnapshot(ctx, snap); err != nil {
			return model.Snapshot{}, e.fail(fmt.Errorf("save snapshot: %w", err))
		}
		if p, ok := e.store.(pruner); ok && e.keep > 0 {
			if n, err := p.PruneSnapshots(ctx, e.keep); err != nil {
				e.logger.Warn("prune snapshots failed", "error", err)
			} else if n > 0 {
				e.logger.Debug("pruned snapshots", "removed", n)
			}
		}
	}

	e.mu.Lock()
	e.snap = &snap
	e.lastErr = nil
	e.mu.Unlock()

	e.logger.Info("refreshed",
		"snapshot", snap.ID,
		"source", snap.Source,
		"rows", len(rows),
		"matches", len(snap.Matches),
		"took", e.now().Sub(start))
	for _, r := range e.renderers {
		r.OnRefresh(snap)
	}
	return snap, nil
}

func (e *Engine) fail(err error) error {
	e.mu.Lock()
	e.lastErr = err
	e.mu.Unlock()
	e.logger.Error("refresh failed", "error", err)
	for _, r := range e.renderers {
		r.OnError(err)
	}
	return err
}

// StartAutoRefresh refreshes every interval until ctx is done. It blocks, so
// run it in its own goroutine. A non-positive interval returns immediately.
func (e *Engine) StartAutoRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	e.logger.Info("auto refresh started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Errors are already logged and broadcast by refresh.
			_, _ = e.Refresh(ctx)
		}
	}
}

// Snapshot returns the current snapshot and whether one is loaded.
func (e *Engine) Snapshot() (model.Snapshot, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.snap == nil {
		return model.Snapshot{}, false
	}
	return *e.snap, true
}

// LastError returns the error of the most recent failed refresh, cleared by
// the next successful one.
func (e *Engine) LastError() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastErr
}

// FormURL returns the configured data-entry form URL.
func (e *Engine) FormURL() string {
	return e.formURL
}

// matches returns the current match list. Snapshots are replaced, never
// mutated, so the slice is safe to read without holding the lock.
func (e *Engine) matches() []model.Match {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.snap == nil {
		return nil
	}
	return e.snap.Matches
}

// Matches returns a copy of the current match list, newest first.
func (e *Engine) Matches() []model.Match {
	m := e.matches()
	out := make([]model.Match, len(m))
	copy(out, m)
	return out
}

func (e *Engine) Players() []string {
	return aggregator.Players(e.matches())
}

func (e *Engine) PlayerStats(name string) model.PlayerStats {
	return aggregator.PlayerStats(e.matches(), name)
}

func (e *Engine) HeadToHead(a, b string) model.HeadToHead {
	return aggregator.HeadToHead(e.matches(), a, b)
}

func (e *Engine) Leaderboard() []model.PlayerStats {
	return aggregator.Leaderboard(e.matches())
}

// WinPctOverTime returns running game-win histories for the given players,
// or for every player when none are named.
func (e *Engine) WinPctOverTime(players ...string) []model.PlayerTrend {
	m := e.matches()
	if len(players) == 0 {
		players = aggregator.Players(m)
	}
	return aggregator.WinPctOverTime(m, players)
}

func (e *Engine) Recent(n int) []model.Match {
	return aggregator.Recent(e.matches(), n)
}

// Dashboard builds every view from one consistent snapshot.
func (e *Engine) Dashboard() model.Dashboard {
	snap, _ := e.Snapshot()
	m := snap.Matches
	players := aggregator.Players(m)
	return model.Dashboard{
		SnapshotID:  snap.ID,
		Source:      snap.Source,
		FetchedAt:   snap.FetchedAt,
		Players:     players,
		Leaderboard: aggregator.Leaderboard(m),
		HeadToHead:  aggregator.AllHeadToHead(m, players),
		Trends:      aggregator.WinPctOverTime(m, players),
		Recent:      aggregator.Recent(m, aggregator.DefaultRecent),
		FormURL:     e.formURL,
	}
}

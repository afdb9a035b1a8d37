package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pable/tennisdash/internal/model"
)

// fakeSource returns fixed rows or an error and counts fetches.
type fakeSource struct {
	rows  [][]string
	err   error
	calls atomic.Int32
	gate  chan struct{} // when non-nil, FetchRows blocks until it is closed
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) FetchRows(ctx context.Context) ([][]string, error) {
	f.calls.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.rows, f.err
}

type memStore struct {
	mu    sync.Mutex
	saved []model.Snapshot
	err   error
}

func (s *memStore) SaveSnapshot(_ context.Context, snap model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, snap)
	return nil
}

type recordingRenderer struct {
	mu        sync.Mutex
	refreshes []model.Snapshot
	errs      []error
}

func (r *recordingRenderer) OnRefresh(s model.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refreshes = append(r.refreshes, s)
}

func (r *recordingRenderer) OnError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func sheetRows() [][]string {
	return [][]string{
		{"Timestamp", "Date", "Player 1", "Score 1", "Player 2", "Score 2"},
		{"1/1/2024 9:00:00", "1/1/2024", "A", "6", "B", "2"},
		{"1/2/2024 9:00:00", "1/2/2024", "A", "3", "B", "6"},
		{"1/3/2024 9:00:00", "1/3/2024", "A", "7", "B", "5"},
	}
}

func TestRefresh_EndToEnd(t *testing.T) {
	src := &fakeSource{rows: sheetRows()}
	store := &memStore{}
	rec := &recordingRenderer{}
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	e := New(src, WithStore(store, 0), WithRenderer(rec), WithClock(func() time.Time { return fixed }))

	snap, err := e.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if snap.ID == "" || snap.Source != "fake" || !snap.FetchedAt.Equal(fixed) {
		t.Errorf("unexpected snapshot metadata %+v", snap)
	}
	if len(snap.Matches) != 3 || snap.Matches[0].Date != "1/3/2024" {
		t.Fatalf("expected 3 matches newest first, got %+v", snap.Matches)
	}
	if len(store.saved) != 1 || store.saved[0].ID != snap.ID {
		t.Errorf("snapshot not persisted: %+v", store.saved)
	}
	if len(rec.refreshes) != 1 {
		t.Errorf("renderer: want 1 refresh, got %d", len(rec.refreshes))
	}

	a := e.PlayerStats("A")
	if a.Wins != 2 || a.Losses != 1 || a.WinPct != 66.7 || a.GamesWon != 16 || a.GamesLost != 13 {
		t.Errorf("A stats: %+v", a)
	}
	h := e.HeadToHead("A", "B")
	if h.Player1Wins != 2 || h.Player2Wins != 1 {
		t.Errorf("A vs B: want 2-1, got %d-%d", h.Player1Wins, h.Player2Wins)
	}
	trends := e.WinPctOverTime()
	if len(trends) != 2 || trends[0].History[0].Date != "1/1/2024" {
		t.Errorf("trends not chronological: %+v", trends)
	}

	d := e.Dashboard()
	if d.SnapshotID != snap.ID || len(d.Leaderboard) != 2 || len(d.HeadToHead) != 1 || len(d.Recent) != 3 {
		t.Errorf("unexpected dashboard %+v", d)
	}
}

func TestRefresh_NoData(t *testing.T) {
	for _, rows := range [][][]string{nil, {{"Date", "Player 1"}}} {
		rec := &recordingRenderer{}
		e := New(&fakeSource{rows: rows}, WithRenderer(rec))
		_, err := e.Refresh(context.Background())
		if !errors.Is(err, ErrNoData) {
			t.Errorf("rows=%v: want ErrNoData, got %v", rows, err)
		}
		if len(rec.errs) != 1 {
			t.Errorf("renderer: want 1 error, got %d", len(rec.errs))
		}
		if !errors.Is(e.LastError(), ErrNoData) {
			t.Errorf("LastError: want ErrNoData, got %v", e.LastError())
		}
	}
}

func TestRefresh_FailureKeepsPreviousSnapshot(t *testing.T) {
	src := &fakeSource{rows: sheetRows()}
	e := New(src)
	first, err := e.Refresh(context.Background())
	if err != nil {
		t.Fatalf("first Refresh: %v", err)
	}

	fetchErr := errors.New("HTTP 500")
	src.err = fetchErr
	if _, err := e.Refresh(context.Background()); !errors.Is(err, fetchErr) {
		t.Fatalf("want wrapped fetch error, got %v", err)
	}
	cur, ok := e.Snapshot()
	if !ok || cur.ID != first.ID {
		t.Errorf("failed refresh replaced snapshot: got %q, want %q", cur.ID, first.ID)
	}
	if len(e.Players()) != 2 {
		t.Errorf("queries should still see the previous data")
	}

	src.err = nil
	if _, err := e.Refresh(context.Background()); err != nil {
		t.Fatalf("recovery Refresh: %v", err)
	}
	if e.LastError() != nil {
		t.Errorf("LastError should clear after success, got %v", e.LastError())
	}
}

func TestRefresh_StoreFailureIsFatal(t *testing.T) {
	store := &memStore{err: errors.New("disk full")}
	e := New(&fakeSource{rows: sheetRows()}, WithStore(store, 0))
	if _, err := e.Refresh(context.Background()); err == nil {
		t.Fatal("expected save error")
	}
	if _, ok := e.Snapshot(); ok {
		t.Error("snapshot should not be installed when persisting fails")
	}
}

func TestRefresh_ConcurrentCallsCoalesce(t *testing.T) {
	src := &fakeSource{rows: sheetRows(), gate: make(chan struct{})}
	e := New(src)

	const n = 5
	var wg sync.WaitGroup
	ids := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snap, err := e.Refresh(context.Background())
			ids[i], errs[i] = snap.ID, err
		}(i)
	}

	// Wait for the first fetch to start, give the others time to join, then release.
	deadline := time.Now().Add(2 * time.Second)
	for src.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	close(src.gate)
	wg.Wait()

	if got := src.calls.Load(); got != 1 {
		t.Errorf("want 1 fetch for %d concurrent refreshes, got %d", n, got)
	}
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Errorf("caller %d: %v", i, errs[i])
		}
		if ids[i] != ids[0] {
			t.Errorf("caller %d got snapshot %q, want shared %q", i, ids[i], ids[0])
		}
	}
}

func TestRefresh_CancelledCallerDoesNotFailJoiners(t *testing.T) {
	src := &fakeSource{rows: sheetRows(), gate: make(chan struct{})}
	rec := &recordingRenderer{}
	e := New(src, WithRenderer(rec))

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := e.Refresh(leaderCtx)
		leaderErr <- err
	}()
	deadline := time.Now().Add(2 * time.Second)
	for src.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	type result struct {
		snap model.Snapshot
		err  error
	}
	joiner := make(chan result, 1)
	go func() {
		snap, err := e.Refresh(context.Background())
		joiner <- result{snap, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	if err := <-leaderErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("leader: want context.Canceled, got %v", err)
	}
	close(src.gate)

	got := <-joiner
	if got.err != nil {
		t.Fatalf("joiner failed after leader cancelled: %v", got.err)
	}
	if len(got.snap.Matches) != 3 {
		t.Errorf("joiner: want 3 matches, got %d", len(got.snap.Matches))
	}
	if src.calls.Load() != 1 {
		t.Errorf("want 1 fetch, got %d", src.calls.Load())
	}
	if e.LastError() != nil {
		t.Errorf("LastError: want nil, got %v", e.LastError())
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.errs) != 0 || len(rec.refreshes) != 1 {
		t.Errorf("renderer: want 0 errors and 1 refresh, got %d and %d", len(rec.errs), len(rec.refreshes))
	}
}

func TestQueries_BeforeFirstRefresh(t *testing.T) {
	e := New(&fakeSource{})
	if _, ok := e.Snapshot(); ok {
		t.Error("no snapshot expected before refresh")
	}
	if len(e.Players()) != 0 || len(e.Leaderboard()) != 0 || len(e.Recent(10)) != 0 {
		t.Error("queries on an empty engine should return empty results")
	}
	if s := e.PlayerStats("A"); s.WinPct != 0 {
		t.Errorf("want 0 WinPct, got %v", s.WinPct)
	}
}

func TestSeed(t *testing.T) {
	e := New(&fakeSource{})
	e.Seed(model.Snapshot{ID: "stored", Matches: []model.Match{{Player1: "A", Score1: 6, Player2: "B", Score2: 1}}})
	if got := e.Leaderboard(); len(got) != 2 || got[0].Name != "A" {
		t.Errorf("unexpected leaderboard from seeded snapshot: %+v", got)
	}
}

func TestStartAutoRefresh(t *testing.T) {
	src := &fakeSource{rows: sheetRows()}
	e := New(src)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		e.StartAutoRefresh(ctx, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for src.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()
	<-done
	if src.calls.Load() < 2 {
		t.Errorf("expected at least 2 ticks, got %d", src.calls.Load())
	}

	// Disabled interval returns immediately.
	e.StartAutoRefresh(context.Background(), 0)
}

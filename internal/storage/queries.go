package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pable/tennisdash/internal/model"
)

// timeLayout is fixed-width so fetched_at sorts lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SaveSnapshot stores a snapshot with its raw rows and matches in one transaction.
// Saving the same ID twice replaces the earlier copy.
func (db *DB) SaveSnapshot(ctx context.Context, snap model.Snapshot) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_rows WHERE snapshot_id = ?`, snap.ID); err != nil {
		return fmt.Errorf("clear rows: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM matches WHERE snapshot_id = ?`, snap.ID); err != nil {
		return fmt.Errorf("clear matches: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO snapshots(id, source, fetched_at, row_count, match_count)
		VALUES (?, ?, ?, ?, ?)`,
		snap.ID, snap.Source, snap.FetchedAt.UTC().Format(timeLayout), len(snap.Rows), len(snap.Matches),
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	rowStmt, err := tx.PrepareContext(ctx, `INSERT INTO snapshot_rows(snapshot_id, seq, cells) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer rowStmt.Close()
	for i, r := range snap.Rows {
		if r == nil {
			r = []string{}
		}
		cells, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encode row %d: %w", i, err)
		}
		if _, err := rowStmt.ExecContext(ctx, snap.ID, i, string(cells)); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	matchStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO matches(snapshot_id, seq, date, player1, score1, player2, score2)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer matchStmt.Close()
	for i, m := range snap.Matches {
		if _, err := matchStmt.ExecContext(ctx, snap.ID, i, m.Date, m.Player1, m.Score1, m.Player2, m.Score2); err != nil {
			return fmt.Errorf("insert match %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// LatestSnapshot returns the most recently fetched snapshot, or nil if none is stored.
func (db *DB) LatestSnapshot(ctx context.Context) (*model.Snapshot, error) {
	var id string
	err := db.conn.QueryRowContext(ctx,
		`SELECT id FROM snapshots ORDER BY fetched_at DESC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return db.GetSnapshot(ctx, id)
}

// GetSnapshot loads a full snapshot by ID, or nil if it does not exist.
func (db *DB) GetSnapshot(ctx context.Context, id string) (*model.Snapshot, error) {
	var snap model.Snapshot
	var fetchedAt string
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, source, fetched_at FROM snapshots WHERE id = ?`, id).
		Scan(&snap.ID, &snap.Source, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	snap.FetchedAt = parseTime(fetchedAt)

	if snap.Rows, err = db.snapshotRows(ctx, id); err != nil {
		return nil, fmt.Errorf("load rows: %w", err)
	}
	if snap.Matches, err = db.snapshotMatches(ctx, id); err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}
	return &snap, nil
}

func (db *DB) snapshotRows(ctx context.Context, id string) ([][]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT cells FROM snapshot_rows WHERE snapshot_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var cells []string
		if err := json.Unmarshal([]byte(raw), &cells); err != nil {
			return nil, fmt.Errorf("decode cells: %w", err)
		}
		out = append(out, cells)
	}
	return out, rows.Err()
}

func (db *DB) snapshotMatches(ctx context.Context, id string) ([]model.Match, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT date, player1, score1, player2, score2
		FROM matches WHERE snapshot_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Match
	for rows.Next() {
		var m model.Match
		if err := rows.Scan(&m.Date, &m.Player1, &m.Score1, &m.Player2, &m.Score2); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListSnapshots returns stored snapshot summaries, newest first.
// A limit of 0 or less returns all of them.
func (db *DB) ListSnapshots(ctx context.Context, limit int) ([]model.SnapshotSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, source, fetched_at, row_count, match_count
		FROM snapshots ORDER BY fetched_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SnapshotSummary
	for rows.Next() {
		var s model.SnapshotSummary
		var fetchedAt string
		if err := rows.Scan(&s.ID, &s.Source, &fetchedAt, &s.RowCount, &s.MatchCount); err != nil {
			return nil, err
		}
		s.FetchedAt = parseTime(fetchedAt)
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetSnapshotByPrefix finds the newest snapshot whose ID starts with prefix.
func (db *DB) GetSnapshotByPrefix(ctx context.Context, prefix string) (*model.Snapshot, error) {
	var id string
	err := db.conn.QueryRowContext(ctx, `
		SELECT id FROM snapshots WHERE id LIKE ? ORDER BY fetched_at DESC LIMIT 1`, prefix+"%").Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return db.GetSnapshot(ctx, id)
}

// PruneSnapshots deletes all but the newest keep snapshots and returns how many were removed.
func (db *DB) PruneSnapshots(ctx context.Context, keep int) (int64, error) {
	if keep < 1 {
		return 0, nil
	}
	res, err := db.conn.ExecContext(ctx, `
		DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY fetched_at DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Name identifies the store when it is used as a row source.
func (db *DB) Name() string {
	return "store"
}

// FetchRows replays the raw rows of the latest snapshot, so the store can stand
// in for the remote sheet when working offline.
func (db *DB) FetchRows(ctx context.Context) ([][]string, error) {
	snap, err := db.LatestSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	return snap.Rows, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

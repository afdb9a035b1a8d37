package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Overview is a high-level description of the store for the summary command.
type Overview struct {
	Snapshots       int
	LatestID        string
	LatestSource    string
	LatestFetchedAt time.Time
	Matches         int // in the latest snapshot
	Players         int // distinct non-empty names in the latest snapshot
	OldestDate      string
	NewestDate      string
}

// GetOverview summarizes the store. A zero Snapshots count means it is empty.
func (db *DB) GetOverview(ctx context.Context) (Overview, error) {
	var ov Overview
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(1) FROM snapshots`).Scan(&ov.Snapshots); err != nil {
		return ov, fmt.Errorf("count snapshots: %w", err)
	}
	if ov.Snapshots == 0 {
		return ov, nil
	}

	var fetchedAt string
	err := db.conn.QueryRowContext(ctx, `
		SELECT id, source, fetched_at, match_count
		FROM snapshots ORDER BY fetched_at DESC LIMIT 1`).
		Scan(&ov.LatestID, &ov.LatestSource, &fetchedAt, &ov.Matches)
	if err != nil {
		return ov, fmt.Errorf("latest snapshot: %w", err)
	}
	ov.LatestFetchedAt = parseTime(fetchedAt)

	err = db.conn.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT name) FROM (
			SELECT player1 AS name FROM matches WHERE snapshot_id = ?1
			UNION
			SELECT player2 AS name FROM matches WHERE snapshot_id = ?1
		) WHERE name <> ''`, ov.LatestID).Scan(&ov.Players)
	if err != nil {
		return ov, fmt.Errorf("count players: %w", err)
	}

	// seq 0 is the newest row; the highest seq is the oldest.
	var newest, oldest sql.NullString
	err = db.conn.QueryRowContext(ctx, `
		SELECT
			(SELECT date FROM matches WHERE snapshot_id = ?1 ORDER BY seq ASC LIMIT 1),
			(SELECT date FROM matches WHERE snapshot_id = ?1 ORDER BY seq DESC LIMIT 1)`,
		ov.LatestID).Scan(&newest, &oldest)
	if err != nil {
		return ov, fmt.Errorf("date range: %w", err)
	}
	ov.NewestDate, ov.OldestDate = newest.String, oldest.String
	return ov, nil
}

// QueryRaw runs an arbitrary query and returns column names and stringified rows.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch t := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(t)
			default:
				row[i] = fmt.Sprint(t)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

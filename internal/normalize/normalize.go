// Package normalize turns loosely structured spreadsheet rows into Match records.
//
// Rows come from a form-backed sheet that may or may not prepend a timestamp
// and/or an email column before date, player1, score1, player2, score2. There is
// no schema, so the column positions are inferred per row.
package normalize

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pable/tennisdash/internal/model"
)

// Layout is the inferred position of each field within a row.
type Layout struct {
	Date, Player1, Score1, Player2, Score2 int
}

// Columns infers the layout of a single row.
//
// If cell 0 contains "@" or "/" a prefix is assumed: the date sits in cell 1 when
// cell 1 contains "/", otherwise in cell 2 (timestamp and email both skipped).
// With no prefix the date is cell 0. Player and score columns follow the date
// contiguously.
func Columns(row []string) Layout {
	dateCol := 0
	if first := cell(row, 0); first != "" && (strings.Contains(first, "@") || strings.Contains(first, "/")) {
		if strings.Contains(cell(row, 1), "/") {
			dateCol = 1
		} else {
			dateCol = 2
		}
	}
	return Layout{
		Date:    dateCol,
		Player1: dateCol + 1,
		Score1:  dateCol + 2,
		Player2: dateCol + 3,
		Score2:  dateCol + 4,
	}
}

// Row converts one raw row into a Match. Missing cells give empty names and
// zero scores; it never fails.
func Row(row []string) model.Match {
	l := Columns(row)
	return model.Match{
		Date:    cell(row, l.Date),
		Player1: cell(row, l.Player1),
		Score1:  ParseScore(cell(row, l.Score1)),
		Player2: cell(row, l.Player2),
		Score2:  ParseScore(cell(row, l.Score2)),
	}
}

// Rows drops the header row, maps the rest and returns them newest first.
// The feed appends new rows at the bottom, so the mapped slice is reversed.
func Rows(rows [][]string) []model.Match {
	if len(rows) < 2 {
		return nil
	}
	body := rows[1:]
	matches := make([]model.Match, len(body))
	for i, r := range body {
		matches[len(body)-1-i] = Row(r)
	}
	return matches
}

// ParseScore reads the leading integer of s: leading whitespace and an optional
// sign are skipped and digits are consumed until the first non-digit. Empty,
// non-numeric, negative or overflowing input yields 0.
func ParseScore(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 || neg {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

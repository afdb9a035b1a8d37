package normalize

import (
	"testing"

	"github.com/pable/tennisdash/internal/model"
)

func TestColumns(t *testing.T) {
	cases := []struct {
		name    string
		row     []string
		wantCol int
	}{
		{"email prefix then date", []string{"a@b.com", "3/1/2024", "Alice", "6", "Bob", "4"}, 1},
		{"no prefix", []string{"March 1", "Alice", "6", "Bob", "4"}, 0},
		{"slashed date in first cell reads as prefix", []string{"3/1/2024", "Alice", "6", "Bob", "4"}, 2},
		{"timestamp and email prefix", []string{"3/1/2024 10:00:00", "a@b.com", "3/1/2024", "Alice", "6", "Bob", "4"}, 2},
		{"dashed date first cell", []string{"2024-03-01", "Alice", "6", "Bob", "4"}, 0},
		{"empty first cell", []string{"", "3/1/2024", "Alice", "6", "Bob", "4"}, 0},
		{"empty row", nil, 0},
		{"prefix with nothing after", []string{"a@b.com"}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := Columns(tc.row)
			if l.Date != tc.wantCol {
				t.Fatalf("dateCol: want %d, got %d", tc.wantCol, l.Date)
			}
			if l.Player1 != l.Date+1 || l.Score1 != l.Date+2 || l.Player2 != l.Date+3 || l.Score2 != l.Date+4 {
				t.Errorf("non-contiguous layout: %+v", l)
			}
		})
	}
}

func TestRow_PrefixedAndPlainGiveSameMatch(t *testing.T) {
	prefixed := Row([]string{"a@b.com", "3/1/2024", "Alice", "6", "Bob", "4"})
	want := model.Match{Date: "3/1/2024", Player1: "Alice", Score1: 6, Player2: "Bob", Score2: 4}
	if prefixed != want {
		t.Errorf("prefixed row: want %+v, got %+v", want, prefixed)
	}
	plain := Row([]string{"March 1", "Alice", "6", "Bob", "4"})
	want.Date = "March 1"
	if plain != want {
		t.Errorf("plain row: want %+v, got %+v", want, plain)
	}
}

// A slash anywhere in cell 0 means a prefix, so an unprefixed row whose
// first cell is a slashed date shifts by two columns.
func TestRow_SlashedDateWithoutPrefixShifts(t *testing.T) {
	got := Row([]string{"3/1/2024", "Alice", "6", "Bob", "4"})
	want := model.Match{Date: "6", Player1: "Bob", Score1: 4}
	if got != want {
		t.Errorf("want %+v, got %+v", want, got)
	}
}

func TestRow_MissingCells(t *testing.T) {
	got := Row([]string{"March 1", "Alice"})
	want := model.Match{Date: "March 1", Player1: "Alice"}
	if got != want {
		t.Errorf("want %+v, got %+v", want, got)
	}

	if got := Row(nil); got != (model.Match{}) {
		t.Errorf("nil row: want zero Match, got %+v", got)
	}
}

// The heuristic misreads a prefixed row whose date lacks a slash; this is kept.
func TestRow_HeuristicFailureModePreserved(t *testing.T) {
	got := Row([]string{"a@b.com", "2024-03-01", "Alice", "6", "Bob", "4"})
	want := model.Match{Date: "Alice", Player1: "6", Score1: 0, Player2: "4", Score2: 0}
	if got != want {
		t.Errorf("want %+v, got %+v", want, got)
	}
}

func TestParseScore(t *testing.T) {
	cases := map[string]int{
		"6":                       6,
		"  7":                     7,
		"+5":                      5,
		"6 (tb)":                  6,
		"3.5":                     3,
		"":                        0,
		"abc":                     0,
		"-3":                      0,
		"-":                       0,
		"99999999999999999999999": 0,
	}
	for in, want := range cases {
		if got := ParseScore(in); got != want {
			t.Errorf("ParseScore(%q): want %d, got %d", in, want, got)
		}
	}
}

func TestRows_DropsHeaderAndReverses(t *testing.T) {
	rows := [][]string{
		{"Date", "Player 1", "Score 1", "Player 2", "Score 2"},
		{"Jan 1", "A", "6", "B", "2"},
		{"Jan 2", "A", "3", "B", "6"},
		{"Jan 3", "A", "7", "B", "5"},
	}
	got := Rows(rows)
	if len(got) != 3 {
		t.Fatalf("want 3 matches, got %d", len(got))
	}
	if got[0].Date != "Jan 3" || got[2].Date != "Jan 1" {
		t.Errorf("expected newest first, got %s .. %s", got[0].Date, got[2].Date)
	}

	if got := Rows(rows[:1]); got != nil {
		t.Errorf("header-only input: want nil, got %v", got)
	}
}

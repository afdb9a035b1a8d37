package web

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pable/tennisdash/internal/model"
)

func sampleDashboard() model.Dashboard {
	return model.Dashboard{
		SnapshotID: "0123456789abcdef",
		Source:     "fake",
		FetchedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Players:    []string{"Alice", "Bob"},
		Leaderboard: []model.PlayerStats{
			{Name: "Alice", Wins: 2, Losses: 1, WinPct: 66.7, GamesWon: 16, GamesLost: 13, AvgGamesWon: 5.3},
			{Name: "Bob", Wins: 1, Losses: 2, WinPct: 33.3, GamesWon: 13, GamesLost: 16, AvgGamesWon: 4.3},
		},
		HeadToHead: []model.HeadToHead{
			{Player1: "Alice", Player2: "Bob", Player1Wins: 2, Player2Wins: 1, Player1Games: 16, Player2Games: 13},
		},
		Trends: []model.PlayerTrend{
			{Name: "Alice", History: []model.TrendPoint{{Date: "1/1", WinPct: 75}, {Date: "1/2", WinPct: 52.9}}},
			{Name: "Bob", History: []model.TrendPoint{{Date: "1/1", WinPct: 25}}},
		},
		Recent: []model.Match{
			{Date: "1/2", Player1: "Alice", Score1: 3, Player2: "Bob", Score2: 6},
		},
		FormURL: "https://forms.example/view",
	}
}

func TestRenderDashboard(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderDashboard(&buf, sampleDashboard()); err != nil {
		t.Fatalf("RenderDashboard: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Snapshot 01234567",
		"<th>Rank</th><th>Player</th>",
		"<td>1</td><td>Alice</td>",
		"<td>2</td><td>Bob</td>",
		"66.7%",
		"55.2%",
		"Head-to-Head Sets",
		"<polyline",
		"#10b981",
		"#3b82f6",
		"100%",
		`<td class="win">Bob</td>`,
		`<iframe src="https://forms.example/view"`,
		`action="/refresh"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestRenderDashboard_NoForm(t *testing.T) {
	d := sampleDashboard()
	d.FormURL = ""
	var buf bytes.Buffer
	if err := RenderDashboard(&buf, d); err != nil {
		t.Fatalf("RenderDashboard: %v", err)
	}
	if strings.Contains(buf.String(), "<iframe") {
		t.Error("form toggle should be hidden without a form URL")
	}
}

func TestRenderSetup(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSetup(&buf, []string{"SHEETS_API_KEY", "SHEETS_SHEET_NAME"}); err != nil {
		t.Fatalf("RenderSetup: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Missing: SHEETS_API_KEY, SHEETS_SHEET_NAME") {
		t.Error("expected missing variables")
	}
	if !strings.Contains(out, "YOUR_SPREADSHEET_ID_HERE") {
		t.Error("expected sample env")
	}
}

func TestRenderError_Escapes(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderError(&buf, "<b>HTTP 403</b>"); err != nil {
		t.Fatalf("RenderError: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<b>HTTP 403</b>") || !strings.Contains(out, "&lt;b&gt;HTTP 403&lt;/b&gt;") {
		t.Errorf("error message not escaped: %s", out)
	}
	if !strings.Contains(out, "Retry") {
		t.Error("expected retry button")
	}
}

func TestBuildChart(t *testing.T) {
	trends := []model.PlayerTrend{
		{Name: "A", History: []model.TrendPoint{{WinPct: 100}, {WinPct: 50}, {WinPct: 0}}},
		{Name: "B", History: []model.TrendPoint{{WinPct: 0}}},
		{Name: "C"},
	}
	c := BuildChart(trends, 900, 400)

	if len(c.Grid) != 11 || c.Grid[0].Label != "100%" || c.Grid[10].Label != "0%" {
		t.Fatalf("unexpected grid %+v", c.Grid)
	}
	if len(c.Series) != 3 {
		t.Fatalf("want 3 series, got %d", len(c.Series))
	}

	// padding 60, plot area 780x280, step 390.
	a := c.Series[0].Points
	if a[0] != (Point{X: 60, Y: 60}) || a[1] != (Point{X: 450, Y: 200}) || a[2] != (Point{X: 840, Y: 340}) {
		t.Errorf("unexpected points for A: %+v", a)
	}
	if c.Series[0].Polyline != "60.0,60.0 450.0,200.0 840.0,340.0" {
		t.Errorf("polyline = %q", c.Series[0].Polyline)
	}
	if c.Series[1].Points[0] != (Point{X: 60, Y: 340}) {
		t.Errorf("B should start at the origin, got %+v", c.Series[1].Points[0])
	}
	if c.Series[2].Polyline != "" || c.Series[2].Color != Palette[2] {
		t.Errorf("empty history should still get a legend colour: %+v", c.Series[2])
	}
}

func TestBuildChart_NarrowAndPaletteWrap(t *testing.T) {
	var trends []model.PlayerTrend
	for _, n := range []string{"a", "b", "c", "d", "e", "f"} {
		trends = append(trends, model.PlayerTrend{Name: n})
	}
	c := BuildChart(trends, 600, 300)
	if c.Padding != 40 {
		t.Errorf("narrow canvas padding = %d, want 40", c.Padding)
	}
	if c.Series[5].Color != Palette[0] {
		t.Errorf("palette should wrap, got %s", c.Series[5].Color)
	}
}

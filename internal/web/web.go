// Package web renders the HTML dashboard. Three pages exist: setup
// instructions, a single error panel with a retry button, and the dashboard.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/pable/tennisdash/internal/model"
	"github.com/pable/tennisdash/internal/report"
)

//go:embed templates/*.html
var templateFS embed.FS

// Chart canvas size.
const (
	ChartWidth  = 900
	ChartHeight = 400
)

var templates = template.Must(template.New("web").Funcs(template.FuncMap{
	"pct":   func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	"join":  strings.Join,
	"minus": func(a, b int) int { return a - b },
	"plus":  func(a, b float64) float64 { return a + b },
	"rank":  func(i int) int { return i + 1 },
	"shortID": func(id string) string {
		if len(id) > 8 {
			return id[:8]
		}
		return id
	},
	"gamePct": func(s model.PlayerStats) string {
		if s.GamesWon+s.GamesLost == 0 {
			return "—"
		}
		return fmt.Sprintf("%.1f%%", s.GameWinPct())
	},
}).ParseFS(templateFS, "templates/*.html"))

type dashboardPage struct {
	Title     string
	Dashboard model.Dashboard
	Chart     Chart
}

type setupPage struct {
	Title     string
	Missing   []string
	Steps     []string
	SampleEnv string
}

type errorPage struct {
	Title string
	Error string
}

// RenderDashboard writes the full dashboard for d.
func RenderDashboard(w io.Writer, d model.Dashboard) error {
	return templates.ExecuteTemplate(w, "dashboard", dashboardPage{
		Title:     "Tennis Dashboard",
		Dashboard: d,
		Chart:     BuildChart(d.Trends, ChartWidth, ChartHeight),
	})
}

// RenderSetup writes configuration instructions naming the missing variables.
func RenderSetup(w io.Writer, missing []string) error {
	return templates.ExecuteTemplate(w, "setup", setupPage{
		Title:     "Tennis Dashboard: setup",
		Missing:   missing,
		Steps:     report.SetupSteps,
		SampleEnv: report.SampleEnv,
	})
}

// RenderError writes the error panel. msg is shown verbatim.
func RenderError(w io.Writer, msg string) error {
	return templates.ExecuteTemplate(w, "error", errorPage{
		Title: "Tennis Dashboard: error",
		Error: msg,
	})
}

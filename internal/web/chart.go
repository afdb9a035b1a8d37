package web

import (
	"fmt"
	"strings"

	"github.com/pable/tennisdash/internal/model"
)

// Palette is cycled across chart series.
var Palette = []string{"#10b981", "#3b82f6", "#f59e0b", "#ef4444", "#8b5cf6"}

// Chart is a server-side layout of the game-win % line chart, ready for SVG.
type Chart struct {
	Width, Height, Padding int
	Grid                   []GridLine
	Series                 []Series
	AxisBottom             float64
	AxisRight              float64
}

// GridLine is one horizontal guide with its percentage label.
type GridLine struct {
	Y     float64
	Label string
}

// Point is a plotted vertex in SVG coordinates.
type Point struct{ X, Y float64 }

// Series is one player's line.
type Series struct {
	Name     string
	Color    string
	Points   []Point
	Polyline string // "x,y x,y ..." for <polyline points>
	LegendX  float64
}

// BuildChart lays out trends on a width×height canvas. The x axis is the
// participation index, scaled to the longest history; y is 0–100%.
// Every player gets a legend colour, even with an empty history.
func BuildChart(trends []model.PlayerTrend, width, height int) Chart {
	padding := 60
	if width < 768 {
		padding = 40
	}
	chartW := float64(width - 2*padding)
	chartH := float64(height - 2*padding)

	c := Chart{
		Width:      width,
		Height:     height,
		Padding:    padding,
		AxisBottom: float64(height - padding),
		AxisRight:  float64(width - padding),
	}
	for i := 0; i <= 10; i++ {
		c.Grid = append(c.Grid, GridLine{
			Y:     float64(padding) + chartH/10*float64(i),
			Label: fmt.Sprintf("%d%%", 100-i*10),
		})
	}

	maxLen := 0
	for _, t := range trends {
		if len(t.History) > maxLen {
			maxLen = len(t.History)
		}
	}
	step := chartW
	if maxLen > 1 {
		step = chartW / float64(maxLen-1)
	}

	legendX := float64(padding)
	for i, t := range trends {
		s := Series{
			Name:    t.Name,
			Color:   Palette[i%len(Palette)],
			LegendX: legendX,
		}
		var coords []string
		for j, p := range t.History {
			pt := Point{
				X: float64(padding) + step*float64(j),
				Y: float64(padding) + chartH - p.WinPct/100*chartH,
			}
			s.Points = append(s.Points, pt)
			coords = append(coords, fmt.Sprintf("%.1f,%.1f", pt.X, pt.Y))
		}
		s.Polyline = strings.Join(coords, " ")
		c.Series = append(c.Series, s)
		// Rough text width: 8px per rune plus the colour box and gap.
		legendX += float64(len([]rune(t.Name)))*8 + 15 + 40
	}
	return c
}

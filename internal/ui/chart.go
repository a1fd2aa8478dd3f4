package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/tidewatch/internal/models"
	"github.com/ngmaloney/tidewatch/internal/render"
)

// cellAspect is how many times taller a terminal cell is than it is wide.
const cellAspect = 2

// renderChart draws today's tide curve into cols x rows cells. The plan is
// laid out in pixels so the same geometry serves the SVG endpoint.
func renderChart(preds []models.TidePrediction, now time.Time, pal render.Palette, cols, rows, cellWidthPx int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	width := float64(cols * cellWidthPx)
	height := float64(rows * cellWidthPx * cellAspect)
	plan := render.PlanChart(preds, now, render.DefaultChartOptions(width, height))

	if plan.Insufficient {
		msg := lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Muted)).Render(plan.Message)
		return lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, msg)
	}

	cv := newCanvas(cols, rows, plan.Width, plan.Height)
	right := plan.Inner.X + plan.Inner.W
	bottom := plan.Inner.Y + plan.Inner.H

	for _, g := range plan.GridLines {
		cv.line(render.Point{X: plan.Inner.X, Y: g.Y}, render.Point{X: right, Y: g.Y}, '·', pal.Grid)
		col, row := cv.cellOf(g.Label.Point)
		cv.text(col-len(g.Label.Text), row, g.Label.Text, pal.Muted)
	}

	for _, run := range plan.VisibleCurve {
		cv.polyline(run, '•', pal.Curve)
	}

	if plan.ShowNow {
		cv.line(render.Point{X: plan.NowX, Y: plan.Inner.Y}, render.Point{X: plan.NowX, Y: bottom}, '┆', pal.NowLine)
	}

	for _, m := range plan.Markers {
		cv.plot(m.Point, '●', pal.Marker)
	}
	for _, l := range plan.HeightLabels {
		cv.textAt(l.Point, strings.TrimSuffix(l.Text, " ft"), pal.Foreground)
	}
	for _, l := range plan.XLabels {
		cv.textAt(l.Point, l.Text, pal.Muted)
	}
	return cv.String()
}

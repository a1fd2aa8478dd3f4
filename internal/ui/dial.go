package ui

import (
	"strings"

	"github.com/ngmaloney/tidewatch/internal/render"
)

const (
	dialRows = 11
	dialCols = dialRows * cellAspect
)

// renderDial draws the tide-cycle gauge. A rising tide fills from the
// bottom, a falling tide from the top.
func renderDial(arc render.DialArc, direction string, pal render.Palette) string {
	cv := newCanvas(dialCols, dialRows, render.DialViewport, render.DialViewport)

	trackStart := 90.0
	if !arc.Rising {
		trackStart = 270
	}
	track := render.ArcPoints(arc.Center, arc.Radius, trackStart, trackStart+180, 50)
	cv.polyline(track, '·', pal.Track)

	if !arc.Empty {
		start, end := pal.DirectionColors(arc.Rising)
		mid := len(arc.Points) / 2
		cv.polyline(arc.Points[:mid+1], '●', start)
		cv.polyline(arc.Points[mid:], '●', end)
	}

	cv.textAt(arc.Center, render.FormatPercentage(arc.Percentage), pal.Foreground)
	below := arc.Center
	below.Y += render.DialViewport / dialRows * 1.5
	cv.textAt(below, strings.ToUpper(direction), pal.Muted)
	return cv.String()
}

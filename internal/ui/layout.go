package ui

import (
	"strings"

	"github.com/ngmaloney/tidewatch/internal/dashboard"
)

// rect is a block of terminal cells.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// dotRow locates a row of indicator dots, one every two cells from x0.
type dotRow struct {
	y, x0 int
}

func (d dotRow) hit(x, y int) (int, bool) {
	if y != d.y {
		return 0, false
	}
	for i := 0; i < dashboard.ViewCount; i++ {
		if x == d.x0+2*i {
			return i, true
		}
	}
	return 0, false
}

// dotsOffset is where a centred dot row starts inside width cells.
func dotsOffset(width int) int {
	return max((width-(2*dashboard.ViewCount-1))/2, 0)
}

type layout struct {
	body     rect
	dial     rect
	viewDots dotRow
	dialDots dotRow
}

// layout mirrors the geometry View draws so mouse events can be mapped
// back onto widgets.
func (m Model) layout() layout {
	bodyRows := m.bodyRows()
	top := headerRows
	dialTop := top + 2
	return layout{
		body:     rect{x: 0, y: top, w: m.width, h: bodyRows},
		dial:     rect{x: 0, y: dialTop, w: leftWidth, h: dialRows},
		viewDots: dotRow{y: top + bodyRows, x0: dotsOffset(m.width)},
		dialDots: dotRow{y: dialTop + dialRows, x0: dotsOffset(leftWidth)},
	}
}

// dots renders the indicator row for active, centred in width cells.
func (m Model) dots(active, width int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", dotsOffset(width)))
	for i := 0; i < dashboard.ViewCount; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i == active {
			b.WriteString(m.styles.DotOn.Render("●"))
		} else {
			b.WriteString(m.styles.DotOff.Render("○"))
		}
	}
	return b.String()
}

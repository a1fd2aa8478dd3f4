package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/tidewatch/internal/render"
)

type cell struct {
	r     rune
	color string
}

// canvas rasterizes render-plan coordinates onto a grid of terminal cells.
type canvas struct {
	cols, rows int
	sx, sy     float64
	cells      []cell
}

// newCanvas maps a width x height surface onto cols x rows cells.
func newCanvas(cols, rows int, width, height float64) *canvas {
	c := &canvas{cols: cols, rows: rows, cells: make([]cell, cols*rows)}
	if width > 0 {
		c.sx = float64(cols) / width
	}
	if height > 0 {
		c.sy = float64(rows) / height
	}
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
	return c
}

func (c *canvas) cellOf(p render.Point) (int, int) {
	return int(math.Floor(p.X * c.sx)), int(math.Floor(p.Y * c.sy))
}

func (c *canvas) set(col, row int, r rune, color string) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row*c.cols+col] = cell{r: r, color: color}
}

func (c *canvas) plot(p render.Point, r rune, color string) {
	col, row := c.cellOf(p)
	c.set(col, row, r, color)
}

// line draws a run of cells between two surface points.
func (c *canvas) line(a, b render.Point, r rune, color string) {
	c0, r0 := c.cellOf(a)
	c1, r1 := c.cellOf(b)
	steps := max(abs(c1-c0), abs(r1-r0))
	if steps == 0 {
		c.set(c0, r0, r, color)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		col := int(math.Round(float64(c0) + t*float64(c1-c0)))
		row := int(math.Round(float64(r0) + t*float64(r1-r0)))
		c.set(col, row, r, color)
	}
}

func (c *canvas) polyline(points []render.Point, r rune, color string) {
	for i := 1; i < len(points); i++ {
		c.line(points[i-1], points[i], r, color)
	}
	if len(points) == 1 {
		c.plot(points[0], r, color)
	}
}

// text writes s starting at a cell, clipped to the grid.
func (c *canvas) text(col, row int, s string, color string) {
	for i, r := range []rune(s) {
		c.set(col+i, row, r, color)
	}
}

// textAt writes s centred on a surface point.
func (c *canvas) textAt(p render.Point, s string, color string) {
	col, row := c.cellOf(p)
	c.text(col-len([]rune(s))/2, row, s, color)
}

// String renders the grid, coloring runs of equal color together.
func (c *canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		line := c.cells[row*c.cols : (row+1)*c.cols]
		start := 0
		for i := 1; i <= len(line); i++ {
			if i < len(line) && line[i].color == line[start].color {
				continue
			}
			b.WriteString(paint(line[start:i]))
			start = i
		}
		if row < c.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func paint(run []cell) string {
	rs := make([]rune, len(run))
	for i, cl := range run {
		rs[i] = cl.r
	}
	if run[0].color == "" {
		return string(rs)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(run[0].color)).Render(string(rs))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

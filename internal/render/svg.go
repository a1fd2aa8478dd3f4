package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Color converts "#rrggbb" to a go-chart color. Invalid input is transparent.
func Color(hex string) drawing.Color {
	r, g, b, err := rgb(hex)
	if err != nil {
		return drawing.ColorTransparent
	}
	return drawing.Color{R: r, G: g, B: b, A: 255}
}

func px(v float64) int {
	return int(math.Round(v))
}

// svgSurface wraps a go-chart vector renderer with the few primitives the
// chart and dial need.
type svgSurface struct {
	r chart.Renderer
}

func newSVGSurface(width, height float64) (*svgSurface, error) {
	r, err := chart.SVG(px(width), px(height))
	if err != nil {
		return nil, fmt.Errorf("creating svg renderer: %w", err)
	}
	return &svgSurface{r: r}, nil
}

func (s *svgSurface) fillRect(rect Rect, color string) {
	s.r.ResetStyle()
	s.r.SetFillColor(Color(color))
	s.r.SetStrokeColor(drawing.ColorTransparent)
	s.r.MoveTo(px(rect.X), px(rect.Y))
	s.r.LineTo(px(rect.X+rect.W), px(rect.Y))
	s.r.LineTo(px(rect.X+rect.W), px(rect.Y+rect.H))
	s.r.LineTo(px(rect.X), px(rect.Y+rect.H))
	s.r.Close()
	s.r.Fill()
}

func (s *svgSurface) polyline(points []Point, color string, width float64, dash []float64) {
	if len(points) < 2 {
		return
	}
	s.r.ResetStyle()
	s.r.SetStrokeColor(Color(color))
	s.r.SetStrokeWidth(width)
	if len(dash) > 0 {
		s.r.SetStrokeDashArray(dash)
	}
	s.r.MoveTo(px(points[0].X), px(points[0].Y))
	for _, pt := range points[1:] {
		s.r.LineTo(px(pt.X), px(pt.Y))
	}
	s.r.Stroke()
}

func (s *svgSurface) dot(at Point, radius float64, color string) {
	s.r.ResetStyle()
	s.r.SetFillColor(Color(color))
	s.r.SetStrokeColor(Color(color))
	s.r.Circle(radius, px(at.X), px(at.Y))
}

func (s *svgSurface) text(l Label, color string, size float64) {
	s.r.ResetStyle()
	s.r.SetFontColor(Color(color))
	s.r.SetFontSize(size)
	s.r.Text(l.Text, px(l.X), px(l.Y))
}

// RenderChartSVG draws a chart plan as SVG.
func RenderChartSVG(w io.Writer, plan ChartPlan, pal Palette) error {
	s, err := newSVGSurface(plan.Width, plan.Height)
	if err != nil {
		return err
	}
	s.fillRect(Rect{W: plan.Width, H: plan.Height}, pal.Background)

	if plan.Insufficient {
		s.text(Label{Point: Point{X: plan.Width/2 - 70, Y: plan.Height / 2}, Text: plan.Message}, pal.Muted, 14)
		return s.r.Save(w)
	}

	for _, g := range plan.GridLines {
		s.polyline([]Point{{X: plan.Inner.X, Y: g.Y}, {X: plan.Inner.X + plan.Inner.W, Y: g.Y}}, pal.Grid, 1, nil)
		s.text(Label{Point: Point{X: g.Label.X - 14, Y: g.Label.Y + 4}, Text: g.Label.Text}, pal.Muted, 11)
	}
	for _, l := range plan.XLabels {
		s.text(Label{Point: Point{X: l.X - 12, Y: l.Y}, Text: l.Text}, pal.Muted, 11)
	}

	for _, run := range plan.VisibleCurve {
		s.polyline(run, pal.Curve, 3, nil)
	}

	if plan.ShowNow {
		s.polyline([]Point{{X: plan.NowX, Y: plan.Inner.Y}, {X: plan.NowX, Y: plan.Inner.Y + plan.Inner.H}}, pal.NowLine, 2, []float64{5, 5})
	}

	for _, m := range plan.Markers {
		s.dot(m.Point, 5, pal.Marker)
	}
	for _, l := range plan.HeightLabels {
		s.text(Label{Point: Point{X: l.X - 16, Y: l.Y}, Text: l.Text}, pal.Foreground, 12)
	}
	return s.r.Save(w)
}

// RenderDialSVG draws the tide dial as SVG: a half-circle track, the
// progress arc, and the percentage with direction underneath.
func RenderDialSVG(w io.Writer, arc DialArc, pal Palette) error {
	s, err := newSVGSurface(DialViewport, DialViewport)
	if err != nil {
		return err
	}
	s.fillRect(Rect{W: DialViewport, H: DialViewport}, pal.Background)

	trackStart := 90.0
	if !arc.Rising {
		trackStart = 270
	}
	track := ArcPoints(arc.Center, arc.Radius, trackStart, trackStart+180, dialSegmentsPerUnit)
	s.polyline(track, pal.Track, 12, nil)

	direction := "Falling"
	if arc.Rising {
		direction = "Rising"
	}
	if !arc.Empty {
		start, end := pal.DirectionColors(arc.Rising)
		// go-chart has no gradients; split the arc and shade each half.
		mid := len(arc.Points) / 2
		s.polyline(arc.Points[:mid+1], start, 12, nil)
		s.polyline(arc.Points[mid:], end, 12, nil)
	}

	pct := FormatPercentage(arc.Percentage)
	s.text(Label{Point: Point{X: arc.Center.X - float64(len(pct))*6, Y: arc.Center.Y + 6}, Text: pct}, pal.Foreground, 22)
	s.text(Label{Point: Point{X: arc.Center.X - float64(len(direction))*3.5, Y: arc.Center.Y + 28}, Text: strings.ToUpper(direction)}, pal.Muted, 12)
	return s.r.Save(w)
}

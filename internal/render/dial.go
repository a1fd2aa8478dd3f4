package render

import (
	"fmt"
	"math"
	"strings"
)

const (
	// DialViewport is the square coordinate space of the dial.
	DialViewport = 200.0
	// DialRadius is the arc radius inside the viewport.
	DialRadius = 80.0
	// MinDialPercentage is the smallest progress that draws anything.
	MinDialPercentage = 0.01

	dialMinSegments     = 20
	dialSegmentsPerUnit = 50
)

// Point is a position in surface coordinates (y grows downward).
type Point struct {
	X, Y float64
}

// DialArc describes the tide-progress arc. Angles are degrees with 0 at
// the right and 90 pointing down.
type DialArc struct {
	Empty      bool
	Percentage float64
	Rising     bool
	StartAngle float64
	EndAngle   float64
	Center     Point
	Radius     float64
	Points     []Point
	Path       string
}

// PlanDial lays out the arc for a tide-cycle percentage. A rising tide
// starts at the bottom and a falling tide at the top; both sweep up to a
// half circle in increasing angle.
func PlanDial(percentage float64, rising bool) DialArc {
	center := Point{X: DialViewport / 2, Y: DialViewport / 2}
	arc := DialArc{Rising: rising, Center: center, Radius: DialRadius}

	if math.IsNaN(percentage) || percentage < MinDialPercentage {
		arc.Empty = true
		return arc
	}

	p := clamp01(percentage)
	arc.Percentage = p
	arc.StartAngle = 90
	if !rising {
		arc.StartAngle = 270
	}
	arc.EndAngle = arc.StartAngle + p*180

	segments := int(math.Floor(p * dialSegmentsPerUnit))
	if segments < dialMinSegments {
		segments = dialMinSegments
	}

	arc.Points = ArcPoints(center, DialRadius, arc.StartAngle, arc.EndAngle, segments)
	arc.Path = PolylinePath(arc.Points)
	return arc
}

// ArcPoints samples segments+1 points along a circle from start to end degrees.
func ArcPoints(center Point, radius, startDeg, endDeg float64, segments int) []Point {
	if segments < 1 {
		segments = 1
	}
	points := make([]Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		deg := startDeg + (endDeg-startDeg)*float64(i)/float64(segments)
		rad := deg * math.Pi / 180
		points = append(points, Point{
			X: center.X + radius*math.Cos(rad),
			Y: center.Y + radius*math.Sin(rad),
		})
	}
	return points
}

// PolylinePath renders points as an SVG path "M x y L x y ...".
func PolylinePath(points []Point) string {
	if len(points) == 0 {
		return ""
	}
	var b strings.Builder
	for i, pt := range points {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		fmt.Fprintf(&b, "%.2f %.2f", pt.X, pt.Y)
	}
	return b.String()
}

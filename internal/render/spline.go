package render

// SamplesPerSegment is the number of spline samples between two control points.
const SamplesPerSegment = 40

// CatmullRom interpolates a uniform Catmull-Rom spline through points.
// Each segment contributes samples points at t = k/samples for k in
// [0, samples), so every control point appears verbatim in the output; the
// final control point closes the curve. End segments reuse their endpoint
// as the missing neighbour.
func CatmullRom(points []Point, samples int) []Point {
	if len(points) < 2 {
		out := make([]Point, len(points))
		copy(out, points)
		return out
	}
	if samples < 1 {
		samples = 1
	}

	out := make([]Point, 0, (len(points)-1)*samples+1)
	last := len(points) - 1
	for i := 0; i < last; i++ {
		p0 := points[max(i-1, 0)]
		p1 := points[i]
		p2 := points[i+1]
		p3 := points[min(i+2, last)]

		for k := 0; k < samples; k++ {
			t := float64(k) / float64(samples)
			out = append(out, catmullRomPoint(p0, p1, p2, p3, t))
		}
	}
	return append(out, points[last])
}

func catmullRomPoint(p0, p1, p2, p3 Point, t float64) Point {
	if t == 0 {
		return p1
	}
	t2 := t * t
	t3 := t2 * t
	f := func(a, b, c, d float64) float64 {
		return 0.5 * (2*b +
			(-a+c)*t +
			(2*a-5*b+4*c-d)*t2 +
			(-a+3*b-3*c+d)*t3)
	}
	return Point{
		X: f(p0.X, p1.X, p2.X, p3.X),
		Y: f(p0.Y, p1.Y, p2.Y, p3.Y),
	}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside or on the edge of r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// ClipPolyline clips a polyline to r, returning the visible runs. A run
// breaks wherever the line leaves the rectangle.
func ClipPolyline(points []Point, r Rect) [][]Point {
	var runs [][]Point
	var current []Point

	flush := func() {
		if len(current) > 1 {
			runs = append(runs, current)
		}
		current = nil
	}

	for i := 0; i+1 < len(points); i++ {
		a, b, ok := clipSegment(points[i], points[i+1], r)
		if !ok {
			flush()
			continue
		}
		if len(current) == 0 || current[len(current)-1] != a {
			flush()
			current = append(current, a)
		}
		current = append(current, b)
		// Segment was cut at its far end: the curve leaves here.
		if b != points[i+1] {
			flush()
		}
	}
	flush()
	return runs
}

// clipSegment is Liang-Barsky.
func clipSegment(a, b Point, r Rect) (Point, Point, bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, a.X - r.X},
		{dx, r.X + r.W - a.X},
		{-dy, a.Y - r.Y},
		{dy, r.Y + r.H - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return a, b, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}

	na, nb := a, b
	if t0 > 0 {
		na = Point{X: a.X + t0*dx, Y: a.Y + t0*dy}
	}
	if t1 < 1 {
		nb = Point{X: a.X + t1*dx, Y: a.Y + t1*dy}
	}
	return na, nb, true
}

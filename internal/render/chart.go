package render

import (
	"fmt"
	"math"
	"time"

	"github.com/ngmaloney/tidewatch/internal/models"
)

// InsufficientDataMessage is shown when fewer than two points can be plotted.
const InsufficientDataMessage = "Insufficient tide data"

// Insets are the margins between the surface edge and the plot area.
type Insets struct {
	Top, Right, Bottom, Left float64
}

// ChartOptions sizes the chart surface.
type ChartOptions struct {
	Width    float64
	Height   float64
	Padding  Insets
	Samples  int
	GridStep float64 // feet between horizontal gridlines
}

// DefaultChartOptions returns the canvas layout for a width x height surface.
func DefaultChartOptions(width, height float64) ChartOptions {
	return ChartOptions{
		Width:    width,
		Height:   height,
		Padding:  Insets{Top: 30, Right: 20, Bottom: 30, Left: 45},
		Samples:  SamplesPerSegment,
		GridStep: 2,
	}
}

// ChartPoint is a prediction mapped into surface coordinates.
type ChartPoint struct {
	Prediction models.TidePrediction
	Point
	IsToday bool
}

// Label is text anchored at a point.
type Label struct {
	Point
	Text string
}

// GridLine is a horizontal reference line at a height value.
type GridLine struct {
	Y     float64
	Value float64
	Label Label
}

// ChartPlan is everything a surface needs to draw the tide chart.
// Interpolated curve samples are drawing data only, never predictions.
type ChartPlan struct {
	Insufficient bool
	Message      string

	Width, Height float64
	Inner         Rect
	MinHeight     float64
	MaxHeight     float64

	Points       []ChartPoint
	Curve        []Point
	VisibleCurve [][]Point
	Markers      []ChartPoint
	HeightLabels []Label

	ShowNow bool
	NowX    float64

	GridLines []GridLine
	XLabels   []Label
}

var xAxisHours = []struct {
	hour  float64
	label string
}{
	{0, "12AM"}, {4, "4AM"}, {8, "8AM"}, {12, "12PM"}, {16, "4PM"}, {20, "8PM"}, {24, "12AM"},
}

// PlanChart lays out today's tide curve. The plotted set is today's
// predictions plus yesterday's last and tomorrow's first, so the curve
// enters and leaves the frame naturally.
// Only today's points get markers and labels.
func PlanChart(preds []models.TidePrediction, now time.Time, opts ChartOptions) ChartPlan {
	plan := ChartPlan{
		Width:  opts.Width,
		Height: opts.Height,
		Inner: Rect{
			X: opts.Padding.Left,
			Y: opts.Padding.Top,
			W: opts.Width - opts.Padding.Left - opts.Padding.Right,
			H: opts.Height - opts.Padding.Top - opts.Padding.Bottom,
		},
	}

	midnight := startOfDay(now)
	nextMidnight := midnight.AddDate(0, 0, 1)
	plotted := bridgeDay(models.SortPredictions(preds), midnight, nextMidnight)

	if len(plotted) < 2 || plan.Inner.W <= 0 || plan.Inner.H <= 0 {
		plan.Insufficient = true
		plan.Message = InsufficientDataMessage
		return plan
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, cp := range plotted {
		lo = math.Min(lo, cp.Prediction.Height)
		hi = math.Max(hi, cp.Prediction.Height)
	}
	plan.MinHeight = math.Floor(lo - 1)
	plan.MaxHeight = math.Ceil(hi + 1)

	xOf := func(t time.Time) float64 {
		return plan.Inner.X + t.Sub(midnight).Hours()/24*plan.Inner.W
	}
	yOf := func(h float64) float64 {
		return plan.Inner.Y + (plan.MaxHeight-h)/(plan.MaxHeight-plan.MinHeight)*plan.Inner.H
	}

	control := make([]Point, len(plotted))
	for i := range plotted {
		plotted[i].Point = Point{X: xOf(plotted[i].Prediction.Time), Y: yOf(plotted[i].Prediction.Height)}
		control[i] = plotted[i].Point
	}
	plan.Points = plotted

	samples := opts.Samples
	if samples <= 0 {
		samples = SamplesPerSegment
	}
	plan.Curve = CatmullRom(control, samples)
	plan.VisibleCurve = ClipPolyline(plan.Curve, plan.Inner)

	for _, cp := range plotted {
		if !cp.IsToday {
			continue
		}
		plan.Markers = append(plan.Markers, cp)
		offset := 18.0
		if cp.Prediction.IsHigh() {
			offset = -10
		}
		plan.HeightLabels = append(plan.HeightLabels, Label{
			Point: Point{X: cp.X, Y: cp.Y + offset},
			Text:  FormatHeight(cp.Prediction.Height),
		})
	}

	if !now.Before(midnight) && now.Before(nextMidnight) {
		plan.ShowNow = true
		plan.NowX = xOf(now)
	}

	step := opts.GridStep
	if step <= 0 {
		step = 2
	}
	for v := math.Ceil(plan.MinHeight/step) * step; v <= plan.MaxHeight; v += step {
		y := yOf(v)
		plan.GridLines = append(plan.GridLines, GridLine{
			Y:     y,
			Value: v,
			Label: Label{Point: Point{X: plan.Inner.X - 8, Y: y}, Text: fmt.Sprintf("%.0f", v)},
		})
	}

	for _, h := range xAxisHours {
		plan.XLabels = append(plan.XLabels, Label{
			Point: Point{X: plan.Inner.X + h.hour/24*plan.Inner.W, Y: plan.Inner.Y + plan.Inner.H + 18},
			Text:  h.label,
		})
	}
	return plan
}

// bridgeDay expects sorted predictions. Bridge points come only from the
// calendar days either side of today; a gap in the data leaves that edge
// unbridged.
func bridgeDay(sorted []models.TidePrediction, midnight, nextMidnight time.Time) []ChartPoint {
	var before, after *models.TidePrediction
	var today []ChartPoint
	yesterday := midnight.AddDate(0, 0, -1)
	dayAfter := nextMidnight.AddDate(0, 0, 1)

	for i := range sorted {
		p := sorted[i]
		switch {
		case p.Time.Before(yesterday):
		case p.Time.Before(midnight):
			before = &sorted[i]
		case p.Time.Before(nextMidnight):
			today = append(today, ChartPoint{Prediction: p, IsToday: true})
		case p.Time.Before(dayAfter):
			if after == nil {
				after = &sorted[i]
			}
		}
	}

	out := make([]ChartPoint, 0, len(today)+2)
	if before != nil {
		out = append(out, ChartPoint{Prediction: *before})
	}
	out = append(out, today...)
	if after != nil {
		out = append(out, ChartPoint{Prediction: *after})
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

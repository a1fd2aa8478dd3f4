package render

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanDial_BelowThresholdIsEmpty(t *testing.T) {
	for _, p := range []float64{-1, 0, 0.005, 0.0099, math.NaN()} {
		arc := PlanDial(p, true)
		assert.True(t, arc.Empty, "percentage %v", p)
		assert.Empty(t, arc.Path, "percentage %v", p)
		assert.Empty(t, arc.Points, "percentage %v", p)
	}
}

func TestPlanDial_SweepMatchesPercentage(t *testing.T) {
	for _, p := range []float64{0.01, 0.1, 0.25, 0.333, 0.5, 0.9, 1} {
		for _, rising := range []bool{true, false} {
			arc := PlanDial(p, rising)
			require.False(t, arc.Empty)
			assert.InDelta(t, p*180, arc.EndAngle-arc.StartAngle, 1e-9, "p=%v rising=%v", p, rising)
		}
	}
}

func TestPlanDial_HalfRising(t *testing.T) {
	arc := PlanDial(0.5, true)

	assert.Equal(t, 90.0, arc.StartAngle)
	assert.Equal(t, 180.0, arc.EndAngle)

	first := arc.Points[0]
	last := arc.Points[len(arc.Points)-1]
	// 90 degrees points straight down, 180 straight left.
	assert.InDelta(t, 100, first.X, 1e-9)
	assert.InDelta(t, 180, first.Y, 1e-9)
	assert.InDelta(t, 20, last.X, 1e-9)
	assert.InDelta(t, 100, last.Y, 1e-9)
}

func TestPlanDial_FallingStartsAtTop(t *testing.T) {
	arc := PlanDial(0.25, false)

	assert.Equal(t, 270.0, arc.StartAngle)
	assert.Equal(t, 315.0, arc.EndAngle)
	assert.InDelta(t, 100, arc.Points[0].X, 1e-9)
	assert.InDelta(t, 20, arc.Points[0].Y, 1e-9)
}

func TestPlanDial_SegmentCount(t *testing.T) {
	tests := []struct {
		p    float64
		want int
	}{
		{0.01, 20},
		{0.3, 20},
		{0.41, 20},
		{0.5, 25},
		{1, 50},
		{1.7, 50}, // clamped
	}
	for _, tt := range tests {
		arc := PlanDial(tt.p, true)
		assert.Len(t, arc.Points, tt.want+1, "p=%v", tt.p)
	}
}

func TestPlanDial_ClampsAboveOne(t *testing.T) {
	arc := PlanDial(3, true)
	assert.Equal(t, 1.0, arc.Percentage)
	assert.Equal(t, 270.0, arc.EndAngle)
}

func TestPlanDial_PathFormat(t *testing.T) {
	arc := PlanDial(0.5, true)

	assert.True(t, strings.HasPrefix(arc.Path, "M 100.00 180.00 L "), arc.Path)
	assert.Equal(t, len(arc.Points)-1, strings.Count(arc.Path, " L "))
}

package tides

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ngmaloney/tidewatch/internal/models"
)

// minHeightRange is the smallest prev→next height difference (ft) for which
// the observed level is trusted to refine the cycle percentage.
const minHeightRange = 0.1

// NextTides returns the first high and first low strictly after now.
// preds must be sorted.
func NextTides(preds []models.TidePrediction, now time.Time) (high, low *models.TidePrediction) {
	for i := range preds {
		p := preds[i]
		if !p.Time.After(now) {
			continue
		}
		if p.IsHigh() && high == nil {
			high = &p
		} else if !p.IsHigh() && low == nil {
			low = &p
		}
		if high != nil && low != nil {
			break
		}
	}
	return high, low
}

// TodaysTides returns predictions on now's local calendar day.
func TodaysTides(preds []models.TidePrediction, now time.Time) []models.TidePrediction {
	today := models.PredictionsForDay(preds, now)
	if today == nil {
		return []models.TidePrediction{}
	}
	return today
}

// Status locates now between the bracketing predictions. The time-based
// percentage is averaged with the height-based one when a current level is
// known and the tide range is meaningful. preds must be sorted.
func Status(preds []models.TidePrediction, current *models.CurrentLevel, now time.Time) models.TideStatus {
	var prev, next *models.TidePrediction
	for i := range preds {
		if !preds[i].Time.After(now) {
			prev = &preds[i]
			continue
		}
		next = &preds[i]
		break
	}
	if prev == nil || next == nil {
		return models.UnknownStatus()
	}

	rising := next.IsHigh()

	percentage := 0.5
	if total := next.Time.Sub(prev.Time).Seconds(); total > 0 {
		percentage = now.Sub(prev.Time).Seconds() / total
	}

	if current != nil {
		heightRange := next.Height - prev.Height
		if math.Abs(heightRange) > minHeightRange {
			byHeight := (current.Height - prev.Height) / heightRange
			percentage = (percentage + byHeight) / 2
		}
	}

	percentage = math.Max(0, math.Min(1, percentage))
	rounded := decimal.NewFromFloat(percentage).Round(3).InexactFloat64()

	direction := "Falling"
	if rising {
		direction = "Rising"
	}

	prevCopy, nextCopy := *prev, *next
	return models.TideStatus{
		Direction:      direction,
		Percentage:     rounded,
		IsRising:       rising,
		HasPredictions: true,
		PrevTide:       &prevCopy,
		NextTide:       &nextCopy,
	}
}

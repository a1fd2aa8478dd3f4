package render

import (
	"time"

	"github.com/ngmaloney/tidewatch/internal/models"
)

const (
	// TableDays is the most days the tide table shows.
	TableDays = 5
	// SlotsPerDay is the fixed number of tide cells per row.
	SlotsPerDay = 4

	MarkerHigh = "▲"
	MarkerLow  = "▼"
)

// TableSlot is one cell of the tide table. Empty slots pad short days.
type TableSlot struct {
	Empty  bool
	IsHigh bool
	Marker string
	Height string
	Time   string
}

// TableDay is one row of the tide table.
type TableDay struct {
	Date  time.Time
	Label string
	Slots [SlotsPerDay]TableSlot
}

// BuildTideTable groups predictions by calendar date in loc (never UTC;
// extrema near midnight land on different days otherwise), sorts each day,
// and emits at most TableDays rows of SlotsPerDay cells. Days before from's
// date are skipped; pass the zero time to keep everything.
func BuildTideTable(preds []models.TidePrediction, loc *time.Location, from time.Time) []TableDay {
	if loc == nil {
		loc = time.Local
	}
	var cutoff time.Time
	if !from.IsZero() {
		cutoff = startOfDay(from.In(loc))
	}

	var days []TableDay
	counts := map[int]int{}
	for _, p := range models.SortPredictions(preds) {
		local := p.Time.In(loc)
		date := startOfDay(local)
		if !cutoff.IsZero() && date.Before(cutoff) {
			continue
		}

		idx := len(days) - 1
		if idx < 0 || !days[idx].Date.Equal(date) {
			if len(days) == TableDays {
				break
			}
			days = append(days, TableDay{Date: date, Label: date.Format("Mon Jan 2")})
			idx++
			for s := range days[idx].Slots {
				days[idx].Slots[s] = TableSlot{Empty: true}
			}
		}

		n := counts[idx]
		if n >= SlotsPerDay {
			continue
		}
		days[idx].Slots[n] = slotFor(p, local)
		counts[idx] = n + 1
	}
	return days
}

func slotFor(p models.TidePrediction, local time.Time) TableSlot {
	slot := TableSlot{
		IsHigh: p.IsHigh(),
		Marker: MarkerLow,
		Height: FormatHeight(p.Height),
		Time:   p.Time12hr,
	}
	if slot.IsHigh {
		slot.Marker = MarkerHigh
	}
	if slot.Time == "" {
		slot.Time = Format12Hour(local)
	}
	return slot
}

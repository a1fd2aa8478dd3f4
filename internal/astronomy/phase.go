package astronomy

import (
	"sort"
	"time"

	"github.com/ngmaloney/tidewatch/internal/usno"
)

// Principal and intermediate phase names as USNO and the dashboard use them.
const (
	NewMoon        = "New Moon"
	FirstQuarter   = "First Quarter"
	FullMoon       = "Full Moon"
	LastQuarter    = "Last Quarter"
	WaxingCrescent = "Waxing Crescent"
	WaxingGibbous  = "Waxing Gibbous"
	WaningGibbous  = "Waning Gibbous"
	WaningCrescent = "Waning Crescent"
)

var moonEmoji = map[string]string{
	NewMoon:        "🌑",
	FirstQuarter:   "🌓",
	FullMoon:       "🌕",
	LastQuarter:    "🌗",
	WaxingCrescent: "🌒",
	WaxingGibbous:  "🌔",
	WaningGibbous:  "🌖",
	WaningCrescent: "🌘",
}

var principalIllumination = map[string]int{
	NewMoon:      0,
	FirstQuarter: 50,
	FullMoon:     100,
	LastQuarter:  50,
}

// MoonPhase is the derived phase for one calendar day.
type MoonPhase struct {
	Name         string
	Illumination int // percent, estimated
	Emoji        string
}

// UnknownPhase is reported when no phase table is available.
var UnknownPhase = MoonPhase{Name: "Unknown", Illumination: 50, Emoji: "🌔"}

// civil returns the date's calendar day as a UTC midnight so day counts
// ignore DST.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(a, b time.Time) int {
	return int(civil(b).Sub(civil(a)).Hours() / 24)
}

// sortPhases orders a phase table by date.
func sortPhases(phases []usno.Phase) []usno.Phase {
	sorted := append([]usno.Phase(nil), phases...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date(time.UTC).Before(sorted[j].Date(time.UTC))
	})
	return sorted
}

// bracket finds the last phase on or before day and the first after it.
// phases must be sorted.
func bracket(phases []usno.Phase, day time.Time) (recent, next *usno.Phase) {
	d := civil(day)
	for i := range phases {
		if !phases[i].Date(time.UTC).After(d) {
			recent = &phases[i]
			continue
		}
		next = &phases[i]
		break
	}
	return recent, next
}

// DerivePhase names the phase on day from the surrounding principal phases.
// Between two principal phases the intermediate name is used, with
// illumination interpolated linearly over whole days.
func DerivePhase(phases []usno.Phase, day time.Time) MoonPhase {
	recent, next := bracket(sortPhases(phases), day)
	if recent == nil {
		return UnknownPhase
	}

	principal := func(name string) MoonPhase {
		emoji, ok := moonEmoji[name]
		if !ok {
			emoji = "🌙"
		}
		illum, ok := principalIllumination[name]
		if !ok {
			illum = 50
		}
		return MoonPhase{Name: name, Illumination: illum, Emoji: emoji}
	}

	// On a principal phase's own day, or past the end of the table, the
	// principal name stands.
	if next == nil || daysBetween(recent.Date(time.UTC), day) == 0 {
		return principal(recent.Name)
	}

	var progress float64
	if total := daysBetween(recent.Date(time.UTC), next.Date(time.UTC)); total > 0 {
		progress = float64(daysBetween(recent.Date(time.UTC), day)) / float64(total)
	}
	step := int(progress * 50)

	switch {
	case recent.Name == NewMoon && next.Name == FirstQuarter:
		return MoonPhase{Name: WaxingCrescent, Illumination: step, Emoji: moonEmoji[WaxingCrescent]}
	case recent.Name == FirstQuarter && next.Name == FullMoon:
		return MoonPhase{Name: WaxingGibbous, Illumination: 50 + step, Emoji: moonEmoji[WaxingGibbous]}
	case recent.Name == FullMoon && next.Name == LastQuarter:
		return MoonPhase{Name: WaningGibbous, Illumination: 100 - step, Emoji: moonEmoji[WaningGibbous]}
	case recent.Name == LastQuarter && next.Name == NewMoon:
		return MoonPhase{Name: WaningCrescent, Illumination: 50 - step, Emoji: moonEmoji[WaningCrescent]}
	}
	return principal(recent.Name)
}

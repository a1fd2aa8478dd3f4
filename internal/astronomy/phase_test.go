package astronomy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ngmaloney/tidewatch/internal/usno"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// phases2025 is a slice of the 2025 table (dates only matter).
var phases2025 = []usno.Phase{
	{Name: FullMoon, Year: 2025, Month: 6, Day: 11},
	{Name: NewMoon, Year: 2025, Month: 5, Day: 27},
	{Name: FirstQuarter, Year: 2025, Month: 6, Day: 2},
	{Name: LastQuarter, Year: 2025, Month: 6, Day: 18},
	{Name: NewMoon, Year: 2025, Month: 6, Day: 25},
}

func TestDerivePhase(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		want MoonPhase
	}{
		{"waxing crescent, 3 of 6 days", day(2025, 5, 30), MoonPhase{WaxingCrescent, 25, "🌒"}},
		{"first quarter day", day(2025, 6, 2), MoonPhase{FirstQuarter, 50, "🌓"}},
		{"waxing gibbous, 6 of 9 days", day(2025, 6, 8), MoonPhase{WaxingGibbous, 83, "🌔"}},
		{"full moon day", day(2025, 6, 11), MoonPhase{FullMoon, 100, "🌕"}},
		{"waning gibbous, 1 of 7 days", day(2025, 6, 12), MoonPhase{WaningGibbous, 93, "🌖"}},
		{"waning crescent, 4 of 7 days", day(2025, 6, 22), MoonPhase{WaningCrescent, 22, "🌘"}},
		{"past the table", day(2025, 6, 28), MoonPhase{NewMoon, 0, "🌑"}},
		{"before the table", day(2025, 5, 1), UnknownPhase},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DerivePhase(phases2025, tt.day))
		})
	}
}

func TestDerivePhase_UnexpectedSequence(t *testing.T) {
	phases := []usno.Phase{
		{Name: NewMoon, Year: 2025, Month: 6, Day: 1},
		{Name: FullMoon, Year: 2025, Month: 6, Day: 15},
	}
	assert.Equal(t, MoonPhase{NewMoon, 0, "🌑"}, DerivePhase(phases, day(2025, 6, 5)))
}

func TestTo12Hour(t *testing.T) {
	assert.Equal(t, "5:11 AM", To12Hour("05:11"))
	assert.Equal(t, "12:00 PM", To12Hour("12:00"))
	assert.Equal(t, "12:42 AM", To12Hour("00:42"))
	assert.Equal(t, "9:08 PM", To12Hour("21:08"))
	assert.Equal(t, "--:--", To12Hour("--:--"))
	assert.Equal(t, "", To12Hour(""))
	assert.Equal(t, "soon", To12Hour("soon"))
}

package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/tidewatch/internal/schedule"
)

func TestScheduler_FiresPerDomain(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	clock := schedule.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, loc))

	counts := map[Domain]int{}
	s := StartScheduler(clock, loc, Intervals{
		Tide:      6 * time.Minute,
		Weather:   10 * time.Minute,
		Astronomy: 12 * time.Hour,
		Network:   time.Minute,
	}, func(domains ...Domain) {
		for _, d := range domains {
			counts[d]++
		}
	})

	clock.Advance(30 * time.Minute)
	assert.Equal(t, 5, counts[DomainTide])
	assert.Equal(t, 3, counts[DomainWeather])
	assert.Equal(t, 30, counts[DomainHealth])
	assert.Zero(t, counts[DomainAstronomy])

	// 12:30 -> 00:00 fires the midnight task; 12:00 fires the 12h poll.
	clock.Advance(11*time.Hour + 30*time.Minute)
	assert.Equal(t, 2, counts[DomainAstronomy])
	assert.Equal(t, 2, counts[DomainOutlook])

	s.Stop()
	before := counts[DomainHealth]
	clock.Advance(time.Hour)
	assert.Equal(t, before, counts[DomainHealth])
	assert.Zero(t, clock.Pending())
}

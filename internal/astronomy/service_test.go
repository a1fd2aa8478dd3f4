package astronomy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/tidewatch/internal/cache"
	"github.com/ngmaloney/tidewatch/internal/schedule"
	"github.com/ngmaloney/tidewatch/internal/usno"
)

var pacific = func() *time.Location {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		panic(err)
	}
	return loc
}()

type fakeClient struct {
	days       map[string]*usno.DayEvents
	phases     map[int][]usno.Phase
	dayCalls   map[string]int
	phaseCalls map[int]int
	tz         []int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		days:       map[string]*usno.DayEvents{},
		phases:     map[int][]usno.Phase{},
		dayCalls:   map[string]int{},
		phaseCalls: map[int]int{},
	}
}

func (f *fakeClient) GetDay(_ context.Context, date time.Time, _, _ float64, tz int) (*usno.DayEvents, error) {
	key := date.Format("2006-01-02")
	f.dayCalls[key]++
	f.tz = append(f.tz, tz)
	if ev, ok := f.days[key]; ok {
		cp := *ev
		return &cp, nil
	}
	return nil, errors.New("no data for " + key)
}

func (f *fakeClient) GetPhases(_ context.Context, year, _ int) ([]usno.Phase, error) {
	f.phaseCalls[year]++
	if p, ok := f.phases[year]; ok {
		return p, nil
	}
	return nil, errors.New("no phases")
}

func newService(client *fakeClient, now time.Time) *Service {
	return NewService(client, cache.NewMemory(0), schedule.NewFakeClock(now), Config{
		Latitude: 48.2573, Longitude: -122.5167, Location: pacific,
	})
}

func TestToday(t *testing.T) {
	client := newFakeClient()
	client.days["2025-06-01"] = &usno.DayEvents{Sunrise: "05:11", Sunset: "21:08", SolarNoon: "13:09", Moonrise: "07:40"}
	client.days["2025-06-02"] = &usno.DayEvents{Moonset: "00:42"}
	client.phases[2025] = phases2025

	svc := newService(client, time.Date(2025, 6, 1, 15, 0, 0, 0, pacific))
	snap, err := svc.Today(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2025-06-01", snap.Date)
	assert.Equal(t, "5:11 AM", snap.Sunrise)
	assert.Equal(t, "9:08 PM", snap.Sunset)
	assert.Equal(t, "1:09 PM", snap.SolarNoon)
	assert.Equal(t, "7:40 AM", snap.Moonrise)
	assert.Equal(t, "+1 12:42 AM", snap.Moonset)
	assert.Equal(t, WaxingCrescent, snap.MoonPhase)
	assert.Equal(t, "🌒", snap.MoonEmoji)
	assert.Contains(t, client.tz, -7)

	// Second call is served from the daily cache.
	_, err = svc.Today(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, client.dayCalls["2025-06-01"])
	assert.Equal(t, 1, client.phaseCalls[2025])
}

func TestToday_MoonriseFromYesterday(t *testing.T) {
	client := newFakeClient()
	client.days["2025-06-01"] = &usno.DayEvents{Sunrise: "05:11", Moonset: "10:00"}
	client.days["2025-05-31"] = &usno.DayEvents{Moonrise: "23:52"}

	svc := newService(client, time.Date(2025, 6, 1, 8, 0, 0, 0, pacific))
	snap, err := svc.Today(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "-1 11:52 PM", snap.Moonrise)
	assert.Equal(t, "10:00 AM", snap.Moonset)
	assert.Equal(t, "--:--", snap.Sunset)
	assert.Equal(t, UnknownPhase.Name, snap.MoonPhase)
	assert.Equal(t, 50, snap.MoonIllumination)
}

func TestToday_NoMoonEventsNearby(t *testing.T) {
	client := newFakeClient()
	client.days["2025-06-01"] = &usno.DayEvents{Sunrise: "05:11"}

	snap, err := newService(client, time.Date(2025, 6, 1, 8, 0, 0, 0, pacific)).Today(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "None", snap.Moonrise)
	assert.Equal(t, "None", snap.Moonset)
}

func TestToday_Unavailable(t *testing.T) {
	_, err := newService(newFakeClient(), time.Now()).Today(context.Background())
	assert.Error(t, err)
}

func TestDays(t *testing.T) {
	client := newFakeClient()
	for d := 1; d <= 4; d++ {
		client.days[time.Date(2025, 6, d, 0, 0, 0, 0, pacific).Format("2006-01-02")] = &usno.DayEvents{
			Sunrise: "05:1" + string(rune('0'+d)), Moonrise: "12:00", Moonset: "01:00",
		}
	}
	svc := newService(client, time.Date(2025, 6, 1, 23, 30, 0, 0, pacific))

	snaps, err := svc.Days(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, snaps, 3)
	assert.Equal(t, "2025-06-01", snaps[0].Date)
	assert.Equal(t, "2025-06-03", snaps[2].Date)
	assert.Equal(t, "5:13 AM", snaps[2].Sunrise)

	_, err = svc.Days(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidDays)
	_, err = svc.Days(context.Background(), 8)
	assert.ErrorIs(t, err, ErrInvalidDays)
}

func TestMoonPhase_CrossesYearBoundary(t *testing.T) {
	client := newFakeClient()
	client.days["2025-01-02"] = &usno.DayEvents{Moonrise: "10:00", Moonset: "20:00"}
	client.phases[2025] = []usno.Phase{{Name: FirstQuarter, Year: 2025, Month: 1, Day: 6}}
	client.phases[2024] = []usno.Phase{{Name: NewMoon, Year: 2024, Month: 12, Day: 30}}

	svc := newService(client, time.Date(2025, 1, 2, 12, 0, 0, 0, pacific))
	snap, err := svc.Today(context.Background())
	require.NoError(t, err)

	// Three of seven days past the Dec 30 new moon.
	assert.Equal(t, WaxingCrescent, snap.MoonPhase)
	assert.Equal(t, 21, snap.MoonIllumination)
}

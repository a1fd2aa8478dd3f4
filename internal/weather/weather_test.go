package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/tidewatch/internal/cache"
	"github.com/ngmaloney/tidewatch/internal/models"
	"github.com/ngmaloney/tidewatch/internal/noaa"
	"github.com/ngmaloney/tidewatch/internal/schedule"
)

func f64(v float64) *float64 { return &v }

func qty(v float64, unit string) noaa.Quantity {
	return noaa.Quantity{Value: f64(v), UnitCode: unit}
}

func TestFahrenheit(t *testing.T) {
	assert.Nil(t, Fahrenheit(noaa.Quantity{}))
	assert.Equal(t, 58, *Fahrenheit(qty(14.4, "wmoUnit:degC")))
	assert.Equal(t, 32, *Fahrenheit(qty(0, "wmoUnit:degC")))
	assert.Equal(t, 70, *Fahrenheit(qty(70, "wmoUnit:degF")))
}

func TestWindMPH(t *testing.T) {
	assert.Equal(t, models.NotReported, WindMPH(noaa.Quantity{}))
	assert.Equal(t, "11 mph", WindMPH(qty(5, "wmoUnit:m_s-1")))
	assert.Equal(t, "11 mph", WindMPH(qty(18, "wmoUnit:km_h-1")))
	assert.Equal(t, "0 mph", WindMPH(qty(0, "wmoUnit:km_h-1")))
}

func TestVisibilityMiles(t *testing.T) {
	assert.Equal(t, models.NotReported, VisibilityMiles(noaa.Quantity{}))
	assert.Equal(t, "10.0 mi", VisibilityMiles(qty(16093.4, "wmoUnit:m")))
	assert.Equal(t, "0.5 mi", VisibilityMiles(qty(804.67, "wmoUnit:m")))
}

func TestCompass(t *testing.T) {
	tests := []struct {
		deg  float64
		want string
	}{
		{0, "N"},
		{11, "N"},
		{12, "NNE"},
		{200, "SSW"},
		{270, "W"},
		{350, "N"},
		{360, "N"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Compass(f64(tt.deg)), "%v°", tt.deg)
	}
	assert.Equal(t, models.NotReported, Compass(nil))
}

func periods() []models.ForecastPeriod {
	out := make([]models.ForecastPeriod, 7)
	for i := range out {
		out[i] = models.ForecastPeriod{Number: i + 1, Name: "P", Temperature: 60 + i}
	}
	out[0].ShortForecast = "Mostly Sunny"
	out[0].DetailedForecast = "Mostly sunny, with a high near 60."
	out[0].WindSpeed = "10 mph"
	out[0].WindDirection = "SW"
	out[0].IsDaytime = true
	out[0].Icon = "https://api.weather.gov/icons/land/day/sct"
	return out
}

func TestCombine_ForecastOnly(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	snap := Combine(nil, periods(), "KNUW", now)

	assert.Equal(t, 60, *snap.Temperature)
	assert.Equal(t, "Mostly Sunny", snap.Conditions)
	assert.Equal(t, "10 mph", snap.WindSpeed)
	assert.Equal(t, "SW", snap.WindDirection)
	assert.Nil(t, snap.WindDirectionDegrees)
	assert.Equal(t, models.NotReported, snap.Visibility)
	assert.Len(t, snap.ForecastPeriods, ForecastPeriods)
	assert.True(t, snap.IsDaytime)
	assert.Equal(t, "KNUW", snap.StationID)
	assert.Equal(t, now, snap.LastUpdate)
}

func TestCombine_ObservationWins(t *testing.T) {
	obs := &noaa.Observation{
		TextDescription:  "Partly Cloudy",
		Temperature:      qty(14.4, "wmoUnit:degC"),
		Dewpoint:         qty(8.9, "wmoUnit:degC"),
		WindDirection:    qty(200, "wmoUnit:degree_(angle)"),
		WindSpeed:        qty(5, "wmoUnit:m_s-1"),
		Visibility:       qty(16093.4, "wmoUnit:m"),
		RelativeHumidity: qty(69.5, "wmoUnit:percent"),
	}
	snap := Combine(obs, periods(), "KNUW", time.Now())

	assert.Equal(t, 58, *snap.Temperature)
	assert.Equal(t, "Partly Cloudy", snap.Conditions)
	assert.Equal(t, "11 mph", snap.WindSpeed)
	assert.Equal(t, "SSW", snap.WindDirection)
	assert.Equal(t, 200.0, *snap.WindDirectionDegrees)
	assert.Equal(t, "10.0 mi", snap.Visibility)
	assert.Equal(t, 69.5, *snap.Humidity)
	assert.Nil(t, snap.Pressure)
	assert.Equal(t, 48, *snap.Dewpoint)
}

func TestCombine_PartialObservation(t *testing.T) {
	obs := &noaa.Observation{TextDescription: models.NotReported}
	snap := Combine(obs, periods(), "KNUW", time.Now())

	assert.Equal(t, "Mostly Sunny", snap.Conditions)
	assert.Equal(t, 60, *snap.Temperature)
	assert.Equal(t, "10 mph", snap.WindSpeed)
	assert.Equal(t, models.NotReported, snap.Visibility)
}

type fakeClient struct {
	obs      *noaa.Observation
	obsErr   error
	periods  []models.ForecastPeriod
	forecErr error
}

func (f *fakeClient) GetLatestObservation(context.Context, string) (*noaa.Observation, error) {
	return f.obs, f.obsErr
}

func (f *fakeClient) GetForecast(context.Context, float64, float64) ([]models.ForecastPeriod, error) {
	return f.periods, f.forecErr
}

type countingFallback struct{ n int }

func (c *countingFallback) CacheFallback(string) { c.n++ }

func TestService_Snapshot(t *testing.T) {
	client := &fakeClient{obsErr: errors.New("station offline"), periods: periods()}
	fb := &countingFallback{}
	clock := schedule.NewFakeClock(time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC))
	svc := NewService(client, cache.NewMemory(0), clock, Config{Latitude: 48.2573, Longitude: -122.5167, StationID: "KNUW"}, fb)
	ctx := context.Background()

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Mostly Sunny", snap.Conditions)

	client.forecErr = errors.New("503")
	cached, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Mostly Sunny", cached.Conditions)
	assert.Equal(t, 1, fb.n)
}

func TestService_SnapshotNoCache(t *testing.T) {
	client := &fakeClient{forecErr: errors.New("503")}
	svc := NewService(client, cache.NewMemory(0), nil, Config{StationID: "KNUW"}, nil)

	_, err := svc.Snapshot(context.Background())
	assert.ErrorContains(t, err, "weather forecast unavailable")
}

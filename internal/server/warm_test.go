package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ngmaloney/tidewatch/internal/metrics"
	"github.com/ngmaloney/tidewatch/internal/models"
	"github.com/ngmaloney/tidewatch/internal/schedule"
)

func TestWarmer(t *testing.T) {
	clock := schedule.NewFakeClock(at(1, 6))
	m := metrics.New()

	w := StartWarmer(Dependencies{
		Tides:     &fakeTides{snap: &models.TideSnapshot{}},
		Weather:   &fakeWeather{err: errors.New("weather.gov down")},
		Astronomy: &fakeAstronomy{},
		Metrics:   m,
		Clock:     clock,
	}, WarmIntervals{Tide: 6 * time.Minute, Weather: 10 * time.Minute}, time.Second)

	clock.Advance(30 * time.Minute)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `tidewatch_refreshes_total{domain="tide",outcome="ok"} 5`)
	assert.Contains(t, body, `tidewatch_refreshes_total{domain="weather",outcome="error"} 3`)
	assert.NotContains(t, body, `domain="astronomy"`, "a zero interval arms no task")

	w.Stop()
	assert.Zero(t, clock.Pending())
}

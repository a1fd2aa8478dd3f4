package dashboard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ngmaloney/tidewatch/internal/models"
	"github.com/ngmaloney/tidewatch/internal/render"
)

func TestApply_StoresSnapshots(t *testing.T) {
	s := NewAppState(render.ThemeDark, 50, 30)
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tide := &models.TideSnapshot{StationName: "Seattle"}
	assert.True(t, s.Apply(Result{Domain: DomainTide, Seq: s.Next(DomainTide), At: at, Value: tide}))
	assert.Same(t, tide, s.Tide)
	assert.True(t, s.TideOK)
	assert.Equal(t, at, s.LastUpdated)

	s.Apply(Result{Domain: DomainConfig, Seq: s.Next(DomainConfig), Value: models.LocationInfo{Name: "Camano"}})
	assert.Equal(t, "Camano", s.Location)

	s.Apply(Result{Domain: DomainHealth, Seq: s.Next(DomainHealth)})
	assert.True(t, s.Online)
}

func TestApply_FailureKeepsPriorSnapshot(t *testing.T) {
	s := NewAppState(render.ThemeDark, 50, 30)
	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	weather := &models.WeatherSnapshot{Conditions: "Fog"}
	s.Apply(Result{Domain: DomainWeather, Seq: s.Next(DomainWeather), At: first, Value: weather})

	s.Apply(Result{Domain: DomainWeather, Seq: s.Next(DomainWeather), At: first.Add(time.Hour), Err: errors.New("down")})
	assert.Same(t, weather, s.Weather)
	assert.False(t, s.WeatherOK)
	assert.Equal(t, first, s.LastUpdated, "last updated only advances on success")

	s.Apply(Result{Domain: DomainHealth, Seq: s.Next(DomainHealth), Err: errors.New("timeout")})
	assert.False(t, s.Online)
}

func TestApply_DropsStaleResponses(t *testing.T) {
	s := NewAppState(render.ThemeDark, 50, 30)
	older := s.Next(DomainAstronomy)
	newer := s.Next(DomainAstronomy)

	fresh := &models.AstronomySnapshot{Date: "2025-06-02"}
	stale := &models.AstronomySnapshot{Date: "2025-06-01"}

	assert.True(t, s.Apply(Result{Domain: DomainAstronomy, Seq: newer, Value: fresh}))
	assert.False(t, s.Apply(Result{Domain: DomainAstronomy, Seq: older, Value: stale}))
	assert.Same(t, fresh, s.Astronomy)

	// Sequences are per domain.
	assert.True(t, s.Apply(Result{Domain: DomainTide, Seq: s.Next(DomainTide), Value: &models.TideSnapshot{}}))
}

func TestApply_IsIdempotent(t *testing.T) {
	s := NewAppState(render.ThemeDark, 50, 30)
	r := Result{Domain: DomainOutlook, Seq: s.Next(DomainOutlook), Value: make([]models.AstronomySnapshot, 3)}
	assert.True(t, s.Apply(r))
	assert.False(t, s.Apply(r))
	assert.Len(t, s.Outlook, 3)
}

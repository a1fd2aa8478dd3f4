// Package weather combines the latest station observation with the point
// forecast into a WeatherSnapshot.
package weather

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ngmaloney/tidewatch/internal/cache"
	"github.com/ngmaloney/tidewatch/internal/logger"
	"github.com/ngmaloney/tidewatch/internal/models"
	"github.com/ngmaloney/tidewatch/internal/noaa"
	"github.com/ngmaloney/tidewatch/internal/schedule"
)

// ForecastPeriods is how many forecast periods a snapshot carries.
const ForecastPeriods = 5

// FallbackCounter is told when a response is served from cache.
type FallbackCounter interface {
	CacheFallback(domain string)
}

// Config locates the forecast point and observation station.
type Config struct {
	Latitude  float64
	Longitude float64
	StationID string
}

// Service fetches weather snapshots.
type Service struct {
	client   noaa.WeatherClient
	store    cache.Store
	clock    schedule.Clock
	cfg      Config
	log      *zap.SugaredLogger
	fallback FallbackCounter
}

// NewService wires a weather service. clock and fallback may be nil.
func NewService(client noaa.WeatherClient, store cache.Store, clock schedule.Clock, cfg Config, fallback FallbackCounter) *Service {
	if clock == nil {
		clock = schedule.RealClock()
	}
	return &Service{
		client:   client,
		store:    store,
		clock:    clock,
		cfg:      cfg,
		log:      logger.GetLogger().With("service", "weather"),
		fallback: fallback,
	}
}

func (s *Service) cacheKey() string {
	return fmt.Sprintf("weather:%s:%.4f,%.4f", s.cfg.StationID, s.cfg.Latitude, s.cfg.Longitude)
}

// Snapshot returns current conditions. A missing observation is tolerated;
// a missing forecast falls back to the last good snapshot.
func (s *Service) Snapshot(ctx context.Context) (*models.WeatherSnapshot, error) {
	obs, err := s.client.GetLatestObservation(ctx, s.cfg.StationID)
	if err != nil {
		s.log.Warnw("Observation fetch failed, using forecast values", "station", s.cfg.StationID, "error", err)
		obs = nil
	}

	periods, err := s.client.GetForecast(ctx, s.cfg.Latitude, s.cfg.Longitude)
	if err != nil {
		var cached models.WeatherSnapshot
		if cacheErr := s.store.Get(ctx, s.cacheKey(), &cached); cacheErr == nil {
			s.log.Warnw("Serving cached weather", "error", err)
			if s.fallback != nil {
				s.fallback.CacheFallback("weather")
			}
			return &cached, nil
		}
		return nil, fmt.Errorf("weather forecast unavailable: %w", err)
	}

	snap := Combine(obs, periods, s.cfg.StationID, s.clock.Now())
	if err := s.store.Set(ctx, s.cacheKey(), snap); err != nil {
		s.log.Warnw("Failed to cache weather", "error", err)
	}

	s.log.Debugw("Weather updated", "conditions", snap.Conditions, "visibility", snap.Visibility)
	return snap, nil
}

// Combine builds a snapshot from an observation (may be nil) and at least
// one forecast period. Observation values win; each missing one falls back
// to the first period where the forecast has an equivalent.
func Combine(obs *noaa.Observation, periods []models.ForecastPeriod, stationID string, now time.Time) *models.WeatherSnapshot {
	first := periods[0]

	snap := &models.WeatherSnapshot{
		TemperatureUnit:  "F",
		Conditions:       first.ShortForecast,
		WindSpeed:        first.WindSpeed,
		WindDirection:    first.WindDirection,
		Visibility:       models.NotReported,
		DetailedForecast: first.DetailedForecast,
		Icon:             first.Icon,
		IsDaytime:        first.IsDaytime,
		LastUpdate:       now,
		StationID:        stationID,
	}
	temp := first.Temperature
	snap.Temperature = &temp

	n := len(periods)
	if n > ForecastPeriods {
		n = ForecastPeriods
	}
	snap.ForecastPeriods = append([]models.ForecastPeriod(nil), periods[:n]...)

	if obs == nil {
		return snap
	}

	if t := Fahrenheit(obs.Temperature); t != nil {
		snap.Temperature = t
	}
	if obs.TextDescription != "" && obs.TextDescription != models.NotReported {
		snap.Conditions = obs.TextDescription
	}
	if w := WindMPH(obs.WindSpeed); w != models.NotReported {
		snap.WindSpeed = w
	}
	if d := Compass(obs.WindDirection.Value); d != models.NotReported {
		snap.WindDirection = d
	}
	snap.WindDirectionDegrees = obs.WindDirection.Value
	snap.Visibility = VisibilityMiles(obs.Visibility)
	snap.Humidity = obs.RelativeHumidity.Value
	snap.Pressure = obs.BarometricPressure.Value
	snap.Dewpoint = Fahrenheit(obs.Dewpoint)
	return snap
}

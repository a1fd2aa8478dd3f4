// Package tides assembles tide snapshots from NOAA predictions and water
// level observations.
package tides

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ngmaloney/tidewatch/internal/cache"
	"github.com/ngmaloney/tidewatch/internal/logger"
	"github.com/ngmaloney/tidewatch/internal/models"
	"github.com/ngmaloney/tidewatch/internal/noaa"
	"github.com/ngmaloney/tidewatch/internal/render"
	"github.com/ngmaloney/tidewatch/internal/schedule"
)

// PredictionDays is how far ahead predictions are requested. The window
// also starts one day back so the chart can bridge into yesterday.
const PredictionDays = 7

// FallbackCounter is told when a response is served from cache.
type FallbackCounter interface {
	CacheFallback(domain string)
}

// Config describes the stations a Service reads.
type Config struct {
	PredictionStation  string
	ObservationStation string
	StationName        string
	Location           *time.Location
}

// Service fetches and derives tide data. It is safe for concurrent use.
type Service struct {
	client   noaa.TideClient
	store    cache.Store
	clock    schedule.Clock
	cfg      Config
	log      *zap.SugaredLogger
	fallback FallbackCounter
}

// NewService wires a tide service. clock and fallback may be nil.
func NewService(client noaa.TideClient, store cache.Store, clock schedule.Clock, cfg Config, fallback FallbackCounter) *Service {
	if clock == nil {
		clock = schedule.RealClock()
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Service{
		client:   client,
		store:    store,
		clock:    clock,
		cfg:      cfg,
		log:      logger.GetLogger().With("service", "tides"),
		fallback: fallback,
	}
}

func (s *Service) now() time.Time {
	return s.clock.Now().In(s.cfg.Location)
}

func (s *Service) predictionsKey() string {
	return "tide:predictions:" + s.cfg.PredictionStation
}

func (s *Service) currentKey() string {
	return "tide:current:" + s.cfg.ObservationStation
}

func (s *Service) servedFromCache() {
	if s.fallback != nil {
		s.fallback.CacheFallback("tide")
	}
}

// Predictions returns sorted high/low predictions from yesterday through
// PredictionDays ahead. On upstream failure the last good list is returned.
func (s *Service) Predictions(ctx context.Context) ([]models.TidePrediction, error) {
	now := s.now()
	begin := now.AddDate(0, 0, -1)
	end := now.AddDate(0, 0, PredictionDays)

	preds, err := s.client.GetPredictions(ctx, s.cfg.PredictionStation, begin, end)
	if err != nil {
		var cached []models.TidePrediction
		if cacheErr := s.store.Get(ctx, s.predictionsKey(), &cached); cacheErr == nil && len(cached) > 0 {
			s.log.Warnw("Serving cached tide predictions", "error", err)
			s.servedFromCache()
			return relocate(cached, s.cfg.Location), nil
		}
		return nil, fmt.Errorf("tide predictions unavailable: %w", err)
	}

	preds = models.SortPredictions(preds)
	for i := range preds {
		preds[i].Time12hr = render.Format12Hour(preds[i].Time.In(s.cfg.Location))
	}

	if err := s.store.Set(ctx, s.predictionsKey(), preds); err != nil {
		s.log.Warnw("Failed to cache tide predictions", "error", err)
	}
	s.log.Debugw("Loaded tide predictions", "count", len(preds), "station", s.cfg.PredictionStation)
	return preds, nil
}

// Current returns the latest observed water level. A nil level with a nil
// error means the station reported nothing in the window and nothing was
// cached.
func (s *Service) Current(ctx context.Context) (*models.CurrentLevel, error) {
	level, err := s.client.GetWaterLevel(ctx, s.cfg.ObservationStation, s.now())
	if errors.Is(err, noaa.ErrNoData) {
		s.log.Infow("No current water level data available", "station", s.cfg.ObservationStation)
		return nil, nil
	}
	if err != nil {
		var cached models.CurrentLevel
		if cacheErr := s.store.Get(ctx, s.currentKey(), &cached); cacheErr == nil {
			s.log.Warnw("Serving cached water level", "error", err)
			s.servedFromCache()
			cached.Time = cached.Time.In(s.cfg.Location)
			return &cached, nil
		}
		return nil, fmt.Errorf("water level unavailable: %w", err)
	}

	level.Time = level.Time.In(s.cfg.Location)
	level.Time12hr = render.Format12Hour(level.Time)
	level.StationName = s.cfg.StationName + " (observation)"

	if err := s.store.Set(ctx, s.currentKey(), level); err != nil {
		s.log.Warnw("Failed to cache water level", "error", err)
	}
	return level, nil
}

// Snapshot fetches current level and predictions concurrently and derives
// the rest. It fails only when no predictions are available at all.
func (s *Service) Snapshot(ctx context.Context) (*models.TideSnapshot, error) {
	var (
		current *models.CurrentLevel
		preds   []models.TidePrediction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		level, err := s.Current(gctx)
		if err != nil {
			// The snapshot is still useful without an observation.
			s.log.Warnw("Water level fetch failed", "error", err)
			return nil
		}
		current = level
		return nil
	})
	g.Go(func() error {
		var err error
		preds, err = s.Predictions(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.now()
	high, low := NextTides(preds, now)
	return &models.TideSnapshot{
		Current:            current,
		Predictions:        preds,
		NextHigh:           high,
		NextLow:            low,
		TodaysTides:        TodaysTides(preds, now),
		Status:             Status(preds, current, now),
		PredictionStation:  s.cfg.PredictionStation,
		ObservationStation: s.cfg.ObservationStation,
		StationName:        s.cfg.StationName + " (nearest available)",
		LastUpdate:         s.clock.Now(),
	}, nil
}

// relocate moves cached times back into loc; JSON decoding yields fixed
// offsets.
func relocate(preds []models.TidePrediction, loc *time.Location) []models.TidePrediction {
	out := make([]models.TidePrediction, len(preds))
	for i, p := range preds {
		p.Time = p.Time.In(loc)
		out[i] = p
	}
	return out
}

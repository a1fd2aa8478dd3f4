// Package astronomy derives daily sun/moon events and moon phases from the
// USNO API.
package astronomy

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ngmaloney/tidewatch/internal/cache"
	"github.com/ngmaloney/tidewatch/internal/logger"
	"github.com/ngmaloney/tidewatch/internal/models"
	"github.com/ngmaloney/tidewatch/internal/schedule"
	"github.com/ngmaloney/tidewatch/internal/usno"
)

const (
	// MaxDays bounds the multi-day request.
	MaxDays = 7
	// DefaultDays is used when the caller does not ask for a count.
	DefaultDays = 3

	timePlaceholder = "--:--"
	noEvent         = "None"
)

// ErrInvalidDays is returned by Days for counts outside [1, MaxDays].
var ErrInvalidDays = errors.New("days must be between 1 and 7")

// Client is the subset of the USNO client the service needs.
type Client interface {
	GetDay(ctx context.Context, date time.Time, lat, lon float64, tzOffset int) (*usno.DayEvents, error)
	GetPhases(ctx context.Context, year, tzOffset int) ([]usno.Phase, error)
}

// Config places the observer.
type Config struct {
	Latitude  float64
	Longitude float64
	Location  *time.Location
}

// Service computes astronomy snapshots. Rise/set events are cached per
// calendar day and phase tables per year, both in memory and in the store.
type Service struct {
	client Client
	store  cache.Store
	clock  schedule.Clock
	cfg    Config
	log    *zap.SugaredLogger

	mu     sync.Mutex
	days   map[string]usno.DayEvents
	phases map[int][]usno.Phase
}

// NewService wires an astronomy service. clock may be nil.
func NewService(client Client, store cache.Store, clock schedule.Clock, cfg Config) *Service {
	if clock == nil {
		clock = schedule.RealClock()
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Service{
		client: client,
		store:  store,
		clock:  clock,
		cfg:    cfg,
		log:    logger.GetLogger().With("service", "astronomy"),
		days:   make(map[string]usno.DayEvents),
		phases: make(map[int][]usno.Phase),
	}
}

func (s *Service) today() time.Time {
	now := s.clock.Now().In(s.cfg.Location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.cfg.Location)
}

// Today returns the snapshot for the current local date.
func (s *Service) Today(ctx context.Context) (*models.AstronomySnapshot, error) {
	return s.ForDate(ctx, s.today())
}

// Days returns snapshots for n consecutive days starting today.
func (s *Service) Days(ctx context.Context, n int) ([]models.AstronomySnapshot, error) {
	if n < 1 || n > MaxDays {
		return nil, ErrInvalidDays
	}
	start := s.today()
	out := make([]models.AstronomySnapshot, 0, n)
	for i := 0; i < n; i++ {
		snap, err := s.ForDate(ctx, start.AddDate(0, 0, i))
		if err != nil {
			return nil, err
		}
		out = append(out, *snap)
	}
	return out, nil
}

// ForDate builds the snapshot for one local calendar date. A moonrise
// missing on the day is taken from the day before ("-1 " prefix), a missing
// moonset from the day after ("+1 ").
func (s *Service) ForDate(ctx context.Context, date time.Time) (*models.AstronomySnapshot, error) {
	events, err := s.dayEvents(ctx, date)
	if err != nil {
		return nil, err
	}

	moonrise := To12Hour(events.Moonrise)
	if moonrise == "" {
		if prev, err := s.dayEvents(ctx, date.AddDate(0, 0, -1)); err == nil && prev.Moonrise != "" {
			moonrise = "-1 " + To12Hour(prev.Moonrise)
		}
	}
	moonset := To12Hour(events.Moonset)
	if moonset == "" {
		if next, err := s.dayEvents(ctx, date.AddDate(0, 0, 1)); err == nil && next.Moonset != "" {
			moonset = "+1 " + To12Hour(next.Moonset)
		}
	}

	phase := s.moonPhase(ctx, date)

	return &models.AstronomySnapshot{
		Date:             date.Format("2006-01-02"),
		Sunrise:          orDefault(To12Hour(events.Sunrise), timePlaceholder),
		Sunset:           orDefault(To12Hour(events.Sunset), timePlaceholder),
		SolarNoon:        orDefault(To12Hour(events.SolarNoon), timePlaceholder),
		Moonrise:         orDefault(moonrise, noEvent),
		Moonset:          orDefault(moonset, noEvent),
		MoonPhase:        phase.Name,
		MoonIllumination: phase.Illumination,
		MoonEmoji:        phase.Emoji,
		LastUpdate:       s.clock.Now(),
	}, nil
}

func (s *Service) tzOffset(date time.Time) int {
	return usno.UTCOffsetHours(date, s.cfg.Location)
}

func (s *Service) dayEvents(ctx context.Context, date time.Time) (*usno.DayEvents, error) {
	key := date.Format("2006-01-02")

	s.mu.Lock()
	ev, ok := s.days[key]
	s.mu.Unlock()
	if ok {
		return &ev, nil
	}

	storeKey := fmt.Sprintf("astronomy:day:%.4f,%.4f:%s", s.cfg.Latitude, s.cfg.Longitude, key)
	if err := s.store.Get(ctx, storeKey, &ev); err == nil {
		s.remember(key, ev)
		return &ev, nil
	}

	fetched, err := s.client.GetDay(ctx, date, s.cfg.Latitude, s.cfg.Longitude, s.tzOffset(date))
	if err != nil {
		return nil, fmt.Errorf("rise/set data unavailable for %s: %w", key, err)
	}
	s.remember(key, *fetched)
	if err := s.store.Set(ctx, storeKey, fetched); err != nil {
		s.log.Warnw("Failed to cache rise/set data", "date", key, "error", err)
	}
	return fetched, nil
}

func (s *Service) remember(key string, ev usno.DayEvents) {
	s.mu.Lock()
	s.days[key] = ev
	s.mu.Unlock()
}

func (s *Service) yearPhases(ctx context.Context, year, tz int) ([]usno.Phase, error) {
	s.mu.Lock()
	phases, ok := s.phases[year]
	s.mu.Unlock()
	if ok {
		return phases, nil
	}

	storeKey := fmt.Sprintf("astronomy:phases:%d:%d", year, tz)
	if err := s.store.Get(ctx, storeKey, &phases); err != nil {
		phases, err = s.client.GetPhases(ctx, year, tz)
		if err != nil {
			return nil, err
		}
		if err := s.store.Set(ctx, storeKey, phases); err != nil {
			s.log.Warnw("Failed to cache moon phases", "year", year, "error", err)
		}
	}

	s.mu.Lock()
	s.phases[year] = phases
	s.mu.Unlock()
	return phases, nil
}

// moonPhase loads the date's year and, when the date sits before the first
// or after the last phase of that year, the neighboring year as well.
func (s *Service) moonPhase(ctx context.Context, date time.Time) MoonPhase {
	tz := s.tzOffset(date)
	phases, err := s.yearPhases(ctx, date.Year(), tz)
	if err != nil {
		s.log.Warnw("Moon phase table unavailable", "year", date.Year(), "error", err)
		return UnknownPhase
	}

	recent, next := bracket(sortPhases(phases), date)
	if recent == nil {
		if prev, err := s.yearPhases(ctx, date.Year()-1, tz); err == nil {
			phases = append(append([]usno.Phase(nil), prev...), phases...)
		}
	}
	if next == nil {
		if following, err := s.yearPhases(ctx, date.Year()+1, tz); err == nil {
			phases = append(append([]usno.Phase(nil), phases...), following...)
		}
	}
	return DerivePhase(phases, date)
}

// To12Hour converts a "15:04" time to "3:04 PM". Empty strings and
// placeholders pass through unchanged.
func To12Hour(hhmm string) string {
	if hhmm == "" || hhmm == timePlaceholder {
		return hhmm
	}
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return hhmm
	}
	return t.Format("3:04 PM")
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Package dashboard holds the kiosk's in-memory state and the code that
// fills it: the backend client, refresh fan-out, swipe controllers and the
// poll scheduler.
package dashboard

import (
	"time"

	"github.com/ngmaloney/tidewatch/internal/models"
	"github.com/ngmaloney/tidewatch/internal/render"
)

// Domain names one independently refreshed slice of state.
type Domain string

const (
	DomainConfig    Domain = "config"
	DomainHealth    Domain = "health"
	DomainTide      Domain = "tide"
	DomainWeather   Domain = "weather"
	DomainAstronomy Domain = "astronomy"
	DomainOutlook   Domain = "outlook"
)

// RefreshDomains are the fetches a manual refresh runs together.
var RefreshDomains = []Domain{DomainHealth, DomainTide, DomainWeather, DomainAstronomy}

// Result is the outcome of one fetch. Value holds the decoded payload for
// the domain when Err is nil.
type Result struct {
	Domain Domain
	Seq    uint64
	At     time.Time
	Value  interface{}
	Err    error
}

// AppState is the dashboard's single state struct. It is only mutated from
// the UI update loop; renderers read it.
type AppState struct {
	Location  string
	Tide      *models.TideSnapshot
	Weather   *models.WeatherSnapshot
	Astronomy *models.AstronomySnapshot
	Outlook   []models.AstronomySnapshot

	// Connectivity flags, one per domain. A failed fetch clears its flag
	// and leaves the previous snapshot in place; renderers show
	// placeholders while a flag is false.
	Online      bool
	TideOK      bool
	WeatherOK   bool
	AstronomyOK bool

	LastUpdated time.Time
	Theme       render.Theme

	View Swipe
	Dial Swipe

	issued  map[Domain]uint64
	applied map[Domain]uint64
}

// NewAppState returns an empty state with the given swipe thresholds.
func NewAppState(theme render.Theme, viewThreshold, dialThreshold int) *AppState {
	return &AppState{
		Theme:   theme,
		View:    NewSwipe(viewThreshold),
		Dial:    NewSwipe(dialThreshold),
		issued:  make(map[Domain]uint64),
		applied: make(map[Domain]uint64),
	}
}

// Next stamps a new request for d.
func (s *AppState) Next(d Domain) uint64 {
	s.issued[d]++
	return s.issued[d]
}

// Apply stores r if it answers a newer request than the last one applied
// for its domain, and reports whether it did. Older responses that land
// late are dropped.
func (s *AppState) Apply(r Result) bool {
	if r.Seq <= s.applied[r.Domain] {
		return false
	}
	s.applied[r.Domain] = r.Seq

	if r.Err != nil {
		s.fail(r.Domain)
		return true
	}

	switch v := r.Value.(type) {
	case models.LocationInfo:
		s.Location = v.Name
	case *models.TideSnapshot:
		s.Tide = v
		s.TideOK = true
		s.touch(r.At)
	case *models.WeatherSnapshot:
		s.Weather = v
		s.WeatherOK = true
		s.touch(r.At)
	case *models.AstronomySnapshot:
		s.Astronomy = v
		s.AstronomyOK = true
		s.touch(r.At)
	case []models.AstronomySnapshot:
		s.Outlook = v
	case nil:
		if r.Domain == DomainHealth {
			s.Online = true
		}
	}
	return true
}

// touch advances LastUpdated; it never moves backwards.
func (s *AppState) touch(at time.Time) {
	if at.After(s.LastUpdated) {
		s.LastUpdated = at
	}
}

func (s *AppState) fail(d Domain) {
	switch d {
	case DomainHealth:
		s.Online = false
	case DomainTide:
		s.TideOK = false
	case DomainWeather:
		s.WeatherOK = false
	case DomainAstronomy:
		s.AstronomyOK = false
	}
}

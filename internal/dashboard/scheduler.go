package dashboard

import (
	"time"

	"github.com/ngmaloney/tidewatch/internal/schedule"
)

// Intervals are the fixed poll periods per domain.
type Intervals struct {
	Tide      time.Duration
	Weather   time.Duration
	Astronomy time.Duration
	Network   time.Duration
}

// Scheduler owns the dashboard's periodic tasks. Tasks only call trigger;
// the UI loop does the fetching.
type Scheduler struct {
	tasks []*schedule.Task
}

// MidnightDomains are refreshed when the local date rolls over.
var MidnightDomains = []Domain{DomainTide, DomainAstronomy, DomainOutlook}

// StartScheduler arms one task per domain plus the midnight rollover task.
// trigger receives the domains due for a refresh.
func StartScheduler(clock schedule.Clock, loc *time.Location, iv Intervals, trigger func(...Domain)) *Scheduler {
	s := &Scheduler{}
	every := func(period time.Duration, domains ...Domain) {
		s.tasks = append(s.tasks, schedule.Every(clock, period, func() { trigger(domains...) }))
	}
	every(iv.Tide, DomainTide)
	every(iv.Weather, DomainWeather)
	every(iv.Astronomy, DomainAstronomy, DomainOutlook)
	every(iv.Network, DomainHealth)

	s.tasks = append(s.tasks, schedule.DailyAtMidnight(clock, loc, func() {
		trigger(MidnightDomains...)
	}))
	return s
}

// Stop cancels every task.
func (s *Scheduler) Stop() {
	for _, t := range s.tasks {
		t.Cancel()
	}
}

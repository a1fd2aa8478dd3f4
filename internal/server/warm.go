package server

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ngmaloney/tidewatch/internal/metrics"
	"github.com/ngmaloney/tidewatch/internal/schedule"
)

// WarmIntervals are the periods at which the backend re-polls upstream so
// dashboard requests are served from a warm cache.
type WarmIntervals struct {
	Tide      time.Duration
	Weather   time.Duration
	Astronomy time.Duration
}

// Warmer keeps service caches fresh between client polls.
type Warmer struct {
	tasks []*schedule.Task
}

// StartWarmer arms one periodic task per service. Each run gets its own
// timeout-bound context.
func StartWarmer(deps Dependencies, iv WarmIntervals, timeout time.Duration) *Warmer {
	clock := deps.Clock
	if clock == nil {
		clock = schedule.RealClock()
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	w := &Warmer{}
	add := func(domain string, period time.Duration, run func(context.Context) error) {
		if period <= 0 {
			return
		}
		w.tasks = append(w.tasks, schedule.Every(clock, period, func() {
			warm(domain, timeout, run, deps.Metrics, log)
		}))
	}
	add("tide", iv.Tide, func(ctx context.Context) error {
		_, err := deps.Tides.Snapshot(ctx)
		return err
	})
	add("weather", iv.Weather, func(ctx context.Context) error {
		_, err := deps.Weather.Snapshot(ctx)
		return err
	})
	add("astronomy", iv.Astronomy, func(ctx context.Context) error {
		_, err := deps.Astronomy.Today(ctx)
		return err
	})
	return w
}

func warm(domain string, timeout time.Duration, run func(context.Context) error, m *metrics.Metrics, log *zap.SugaredLogger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := run(ctx)
	m.Refresh(domain, err)
	if err != nil {
		log.Warnw("Cache warm failed", "domain", domain, "error", err)
		return
	}
	log.Debugw("Cache warmed", "domain", domain)
}

// Stop cancels the warm tasks.
func (w *Warmer) Stop() {
	for _, t := range w.tasks {
		t.Cancel()
	}
}

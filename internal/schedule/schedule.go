// Package schedule runs cancellable periodic and midnight-aligned tasks
// over a Clock so tests can drive time by hand.
package schedule

import (
	"sync"
	"time"
)

// Timer is a pending one-shot callback.
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the call
	// stopped the timer, like time.Timer.Stop.
	Stop() bool
}

// Clock is the time source tasks are scheduled against.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// RealClock returns the wall clock.
func RealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Task is a handle on a scheduled job.
type Task struct {
	mu      sync.Mutex
	timer   Timer
	stopped bool
}

// Cancel stops the task. Safe to call more than once and from inside the
// task's own callback.
func (t *Task) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Cancelled reports whether Cancel has been called.
func (t *Task) Cancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// arm schedules the next firing unless the task was cancelled.
func (t *Task) arm(clock Clock, d time.Duration, fire func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.timer = clock.AfterFunc(d, fire)
}

// Every runs fn every period, starting one period from now. There is no
// jitter and no catch-up: a late firing simply re-arms for another period.
func Every(clock Clock, period time.Duration, fn func()) *Task {
	t := &Task{}
	var fire func()
	fire = func() {
		if t.Cancelled() {
			return
		}
		fn()
		t.arm(clock, period, fire)
	}
	t.arm(clock, period, fire)
	return t
}

// NextMidnight returns 00:00:00 of the calendar day after now in now's
// location. The gap is 23 or 25 hours across DST changes.
func NextMidnight(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
}

// DailyAtMidnight runs fn at each local midnight in loc, recomputing the
// delay after every firing.
func DailyAtMidnight(clock Clock, loc *time.Location, fn func()) *Task {
	t := &Task{}
	delay := func() time.Duration {
		now := clock.Now().In(loc)
		return NextMidnight(now).Sub(now)
	}
	var fire func()
	fire = func() {
		if t.Cancelled() {
			return
		}
		fn()
		t.arm(clock, delay(), fire)
	}
	t.arm(clock, delay(), fire)
	return t
}

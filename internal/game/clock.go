package game

import (
	"sync"
	"time"
)

// Tick granularity and delay windows. Sub-second precision carries no
// game meaning; the clock ticks whole seconds only.
const (
	TickInterval  = time.Second
	MismatchDelay = 1000 * time.Millisecond
	AdvanceDelay  = 2000 * time.Millisecond
)

// Scheduler schedules one-shot callbacks after a delay. The production
// implementation wraps time.AfterFunc; tests substitute a manual
// scheduler that fires callbacks deterministically. The returned cancel
// function stops the callback if it has not run yet.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

// timerScheduler is the time.AfterFunc-backed Scheduler.
type timerScheduler struct{}

// NewScheduler returns the real wall-clock scheduler.
func NewScheduler() Scheduler {
	return timerScheduler{}
}

func (timerScheduler) After(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Clock drives the once-per-second tick sequence of a session. It is
// stopped and recreated on every restart or level switch; a stopped clock
// fires at most the tick already in flight, which only ever targets the
// session the clock was created for.
type Clock struct {
	stop     chan struct{}
	stopOnce sync.Once
}

// StartClock begins ticking, invoking fn once per interval on a
// dedicated goroutine until Stop is called.
func StartClock(interval time.Duration, fn func()) *Clock {
	c := &Clock{stop: make(chan struct{})}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-c.stop:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	return c
}

// Stop halts the clock. Safe to call more than once, and safe to call
// from inside the tick callback itself (it does not wait for the tick
// goroutine to exit).
func (c *Clock) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

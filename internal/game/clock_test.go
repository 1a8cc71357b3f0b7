package game

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestClockTicksAndStops(t *testing.T) {
	var ticks atomic.Int64
	c := StartClock(5*time.Millisecond, func() { ticks.Add(1) })

	time.Sleep(60 * time.Millisecond)
	c.Stop()
	if ticks.Load() == 0 {
		t.Fatal("Clock never ticked")
	}

	// A stopped clock fires at most the tick already in flight.
	time.Sleep(15 * time.Millisecond)
	after := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	if ticks.Load() != after {
		t.Errorf("Clock kept ticking after Stop: %d -> %d", after, ticks.Load())
	}
}

func TestClockStopIsIdempotent(t *testing.T) {
	c := StartClock(time.Hour, func() {})
	c.Stop()
	c.Stop() // Must not panic
}

func TestSchedulerAfterFires(t *testing.T) {
	done := make(chan struct{})
	NewScheduler().After(5*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Scheduled callback never fired")
	}
}

func TestSchedulerCancelPreventsCallback(t *testing.T) {
	var fired atomic.Bool
	cancel := NewScheduler().After(20*time.Millisecond, func() { fired.Store(true) })
	cancel()

	time.Sleep(60 * time.Millisecond)
	if fired.Load() {
		t.Error("Cancelled callback fired anyway")
	}
}

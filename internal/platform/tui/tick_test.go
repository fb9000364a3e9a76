package tui

import (
	"testing"
	"time"
)

func TestTeaSchedulerStartPeriodic(t *testing.T) {
	s := NewTeaScheduler()

	h1 := s.StartPeriodic(time.Second, func() {})
	h2 := s.StartPeriodic(time.Second, func() {})
	if h1 == 0 || h1 == h2 {
		t.Errorf("Handles should be unique and non-zero, got %d and %d", h1, h2)
	}
	if s.Active() != 2 {
		t.Errorf("Active() = %d, expected 2", s.Active())
	}

	if s.Flush() == nil {
		t.Error("Starting a timer should queue a command")
	}
	if s.Flush() != nil {
		t.Error("Flush should drain the queue")
	}
}

func TestTeaSchedulerFire(t *testing.T) {
	s := NewTeaScheduler()
	calls := 0
	h := s.StartPeriodic(time.Millisecond, func() { calls++ })
	s.Flush()

	s.Fire(TimerMsg{Handle: h})
	if calls != 1 {
		t.Fatalf("Callback ran %d times, expected 1", calls)
	}
	if s.Flush() == nil {
		t.Error("Firing a live timer should schedule the next period")
	}

	s.Cancel(h)
	s.Fire(TimerMsg{Handle: h})
	if calls != 1 {
		t.Error("A cancelled timer's in-flight message should be ignored")
	}
	if s.Flush() != nil {
		t.Error("A cancelled timer should not be rescheduled")
	}
}

func TestTeaSchedulerCallbackCancelsItself(t *testing.T) {
	s := NewTeaScheduler()
	h := s.StartPeriodic(time.Millisecond, func() {})
	s.timers[h] = periodic{interval: time.Millisecond, fn: func() { s.Cancel(h) }}
	s.Flush()

	s.Fire(TimerMsg{Handle: h})
	if s.Active() != 0 {
		t.Errorf("Active() = %d, expected 0", s.Active())
	}
	if s.Flush() != nil {
		t.Error("A timer cancelled by its own callback should not be rescheduled")
	}
}

// Package tui provides the Bubble Tea integration for the snake game.
// It handles the terminal UI loop, input mapping and drawing the board.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// TimerMsg is sent when a periodic timer's interval elapses.
type TimerMsg struct {
	Handle snake.TimerHandle
	Time   time.Time
}

// timerCmd returns a Bubble Tea command that fires one TimerMsg for h.
func timerCmd(h snake.TimerHandle, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TimerMsg{Handle: h, Time: t}
	})
}

type periodic struct {
	interval time.Duration
	fn       func()
}

// TeaScheduler implements snake.Scheduler on top of tea.Tick, so timer
// callbacks run inside Update, on the same goroutine as key handling.
// Commands produced by StartPeriodic and Fire are collected and handed to
// Bubble Tea with Flush.
type TeaScheduler struct {
	next    snake.TimerHandle
	timers  map[snake.TimerHandle]periodic
	pending []tea.Cmd
}

var _ snake.Scheduler = (*TeaScheduler)(nil)

// NewTeaScheduler creates a scheduler with no timers.
func NewTeaScheduler() *TeaScheduler {
	return &TeaScheduler{
		timers: make(map[snake.TimerHandle]periodic),
	}
}

// StartPeriodic registers fn to run every interval.
func (s *TeaScheduler) StartPeriodic(interval time.Duration, fn func()) snake.TimerHandle {
	s.next++
	h := s.next
	s.timers[h] = periodic{interval: interval, fn: fn}
	s.pending = append(s.pending, timerCmd(h, interval))
	return h
}

// Cancel stops h. A TimerMsg already in flight for h is dropped by Fire.
func (s *TeaScheduler) Cancel(h snake.TimerHandle) {
	delete(s.timers, h)
}

// Fire runs the callback for msg's timer and schedules its next period.
// Messages for cancelled timers are ignored.
func (s *TeaScheduler) Fire(msg TimerMsg) {
	t, ok := s.timers[msg.Handle]
	if !ok {
		return
	}

	t.fn()

	// The callback may have cancelled its own timer
	if _, ok := s.timers[msg.Handle]; ok {
		s.pending = append(s.pending, timerCmd(msg.Handle, t.interval))
	}
}

// Flush returns the commands queued since the last call, or nil.
func (s *TeaScheduler) Flush() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmd := tea.Batch(s.pending...)
	s.pending = nil
	return cmd
}

// Active returns the number of running timers.
func (s *TeaScheduler) Active() int {
	return len(s.timers)
}

package snake

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// TimerHandle identifies a periodic timer. The zero handle means none.
type TimerHandle uint64

// Scheduler runs a callback periodically until cancelled.
// Callbacks must run on the same execution context as input handling.
type Scheduler interface {
	StartPeriodic(interval time.Duration, fn func()) TimerHandle
	Cancel(h TimerHandle)
}

// Controller owns the tick timer: it starts it when the game begins running
// and cancels it on pause, reset and game over.
type Controller struct {
	game      *Game
	scheduler Scheduler
	interval  time.Duration
	timer     TimerHandle
}

// NewController wires a game to a scheduler.
func NewController(game *Game, scheduler Scheduler) *Controller {
	return &Controller{
		game:      game,
		scheduler: scheduler,
		interval:  TickInterval,
	}
}

// Game returns the controlled game.
func (c *Controller) Game() *Game {
	return c.game
}

// Toggle starts, pauses, resumes or restarts the game.
func (c *Controller) Toggle() Phase {
	phase := c.game.Toggle()
	c.syncTimer()
	return phase
}

// Reset stops the timer and returns the game to Idle.
func (c *Controller) Reset() {
	c.game.Reset()
	c.syncTimer()
}

// PlayAgain resets and immediately starts a new round.
func (c *Controller) PlayAgain() Phase {
	phase := c.game.PlayAgain()
	c.syncTimer()
	return phase
}

// SetDirection forwards a steering request to the game.
func (c *Controller) SetDirection(d Direction) bool {
	return c.game.SetDirection(d)
}

// Apply dispatches a platform action. Returns false for actions that had
// no effect or are not gameplay actions.
func (c *Controller) Apply(a core.Action) bool {
	if a.IsDirection() {
		d, _ := DirectionFor(a)
		return c.SetDirection(d)
	}

	switch a {
	case core.ActionToggle:
		c.Toggle()
	case core.ActionReset:
		c.Reset()
	case core.ActionPlayAgain:
		c.PlayAgain()
	default:
		return false
	}
	return true
}

// Stop cancels any outstanding timer without touching the game.
func (c *Controller) Stop() {
	if c.timer != 0 {
		c.scheduler.Cancel(c.timer)
		c.timer = 0
	}
}

// onTick is the timer callback.
func (c *Controller) onTick() {
	c.game.Tick()
	c.syncTimer()
}

// syncTimer makes the timer state match the game's running flag.
func (c *Controller) syncTimer() {
	switch {
	case c.game.Running() && c.timer == 0:
		c.timer = c.scheduler.StartPeriodic(c.interval, c.onTick)
	case !c.game.Running():
		c.Stop()
	}
}

// DirectionFor maps a steering action to a direction.
func DirectionFor(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return DirUp, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	case core.ActionRight:
		return DirRight, true
	default:
		return 0, false
	}
}

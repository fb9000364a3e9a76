package core

// Action represents a semantic game action, abstracted from physical key
// presses and mouse clicks.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // W, Up arrow
	ActionDown              // S, Down arrow
	ActionLeft              // A, Left arrow
	ActionRight             // D, Right arrow
	ActionToggle            // Space, main button - start/pause/resume
	ActionReset             // R, reset button
	ActionPlayAgain         // Enter, overlay button - reset then start
	ActionQuit              // Q, Ctrl+C
	ActionScreenshot        // Ctrl+S
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionToggle:
		return "Toggle"
	case ActionReset:
		return "Reset"
	case ActionPlayAgain:
		return "PlayAgain"
	case ActionQuit:
		return "Quit"
	case ActionScreenshot:
		return "Screenshot"
	default:
		return "Unknown"
	}
}

// IsDirection reports whether the action steers the snake.
func (a Action) IsDirection() bool {
	return a == ActionUp || a == ActionDown || a == ActionLeft || a == ActionRight
}

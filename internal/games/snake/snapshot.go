package snake

// Phase is the position of the game in its play/pause state machine.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseRunning Phase = "running"
	PhasePaused  Phase = "paused"
	PhaseOver    Phase = "over"
	PhaseWon     Phase = "won"
)

// CellKind tells a presenter how to draw one grid cell.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellHead
	CellBody
	CellFood
)

// Snapshot is an immutable copy of the game state, handed to presenters and
// used by tests to compare runs.
type Snapshot struct {
	Tick      uint64
	Snake     []Point // Head first
	Food      Point   // (-1, -1) when the board is full
	Direction Direction
	Score     int
	HighScore int
	Running   bool
	Over      bool
	Won       bool
	Phase     Phase
}

// Snapshot returns a copy of the current game state.
func (g *Game) Snapshot() Snapshot {
	body := make([]Point, len(g.snake))
	copy(body, g.snake)

	return Snapshot{
		Tick:      g.tick,
		Snake:     body,
		Food:      g.food,
		Direction: g.direction,
		Score:     g.score,
		HighScore: g.highScore,
		Running:   g.running,
		Over:      g.over,
		Won:       g.won,
		Phase:     g.Phase(),
	}
}

// Head returns the snake's head, or (-1, -1) for an empty snapshot.
func (s Snapshot) Head() Point {
	if len(s.Snake) == 0 {
		return noFood
	}
	return s.Snake[0]
}

// NewHighScore reports whether the game-over surface should announce a
// new best.
func (s Snapshot) NewHighScore() bool {
	return s.Score == s.HighScore && s.Score > 0
}

// ButtonLabel is the text of the single start/pause/restart control.
func (s Snapshot) ButtonLabel() string {
	switch {
	case s.Over:
		return "Play Again"
	case s.Running:
		return "Pause"
	default:
		return "Start"
	}
}

// Board maps every grid cell to what occupies it, indexed [y][x].
// Food is drawn last, the same way the board always has.
func (s Snapshot) Board() [GridSize][GridSize]CellKind {
	var board [GridSize][GridSize]CellKind

	for i, seg := range s.Snake {
		if !seg.InBounds() {
			continue
		}
		if i == 0 {
			board[seg.Y][seg.X] = CellHead
		} else {
			board[seg.Y][seg.X] = CellBody
		}
	}

	if s.Food.InBounds() {
		board[s.Food.Y][s.Food.X] = CellFood
	}

	return board
}

package snake

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Fixed rules of the classic board.
const (
	GridSize     = 20
	FoodReward   = 10
	TickInterval = 150 * time.Millisecond
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Point represents a cell on the grid.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// InBounds reports whether p lies on the board.
func (p Point) InBounds() bool {
	return p.X >= 0 && p.X < GridSize && p.Y >= 0 && p.Y < GridSize
}

// noFood marks the food as absent (the board is full).
var noFood = Point{X: -1, Y: -1}

func initialSnake() []Point {
	return []Point{{X: 10, Y: 10}}
}

func initialFood() Point {
	return Point{X: 15, Y: 15}
}

// Game owns the complete snake state and its per-tick transition.
// It knows nothing about timers or terminals: a Controller drives Tick and a
// Presenter is told about every completed mutation.
type Game struct {
	rng       *rand.Rand
	store     Store
	presenter Presenter
	logger    *log.Logger

	tick      uint64
	snake     []Point // Head at index 0
	food      Point
	direction Direction // Applied on the last tick
	nextDir   Direction // Buffered for the next tick
	score     int
	highScore int

	running bool
	over    bool
	won     bool
	started bool // Toggled into Running since the last reset
}

// Option configures a Game.
type Option func(*Game)

// WithStore sets where the high score is read from and persisted to.
func WithStore(s Store) Option {
	return func(g *Game) {
		g.store = s
	}
}

// WithPresenter sets the collaborator notified after each mutation.
func WithPresenter(p Presenter) Option {
	return func(g *Game) {
		g.presenter = p
	}
}

// WithLogger sets the logger used for store failures and phase changes.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithSeed seeds food placement. 0 means seed from the current time.
func WithSeed(seed int64) Option {
	return func(g *Game) {
		if seed != 0 {
			g.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// New creates a game in the Idle phase. The high score is read from the
// store once, here.
func New(opts ...Option) *Game {
	g := &Game{
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if g.store != nil {
		hs, err := LoadHighScore(g.store)
		if err != nil {
			g.logger.Warn("could not read high score", "error", err)
		}
		g.highScore = hs
	}

	g.restore()
	g.render()
	return g
}

// restore puts every per-round field back to its initial value.
// The high score survives.
func (g *Game) restore() {
	g.tick = 0
	g.snake = initialSnake()
	g.food = initialFood()
	g.direction = DirRight
	g.nextDir = DirRight
	g.score = 0
	g.running = false
	g.over = false
	g.won = false
	g.started = false
}

// Reset returns the game to its initial Idle state.
func (g *Game) Reset() {
	g.restore()
	g.logger.Debug("game reset")
	g.render()
}

// Toggle drives the play/pause state machine:
// Idle -> Running, Running -> Paused, Paused -> Running, Over -> fresh Running.
func (g *Game) Toggle() Phase {
	if g.over {
		g.restore()
		g.running = true
		g.started = true
		g.logger.Debug("game restarted")
		g.render()
		return g.Phase()
	}

	g.running = !g.running
	if g.running {
		g.started = true
	}
	g.logger.Debug("game toggled", "phase", g.Phase())
	g.render()
	return g.Phase()
}

// PlayAgain resets and then starts a new round, as the game-over control does.
func (g *Game) PlayAgain() Phase {
	g.Reset()
	return g.Toggle()
}

// SetDirection buffers d for the next tick. It is ignored before the first
// start and while paused, and when d would reverse the snake onto itself.
func (g *Game) SetDirection(d Direction) bool {
	if !g.running && !g.over {
		return false
	}
	if !d.Valid() || d == g.direction.Opposite() {
		return false
	}
	g.nextDir = d
	return true
}

// Tick advances the simulation by one step. It is a no-op unless the game
// is Running.
func (g *Game) Tick() Snapshot {
	if !g.running || g.over {
		return g.Snapshot()
	}

	g.tick++
	g.direction = g.nextDir
	head := g.snake[0].Add(g.direction.Vector())

	// Wall or self collision: the body stays where it was
	if !head.InBounds() || g.isSnakeAt(head) {
		g.finish(false)
		return g.Snapshot()
	}

	g.snake = append([]Point{head}, g.snake...)

	if head == g.food {
		g.score += FoodReward
		if g.score > g.highScore {
			g.highScore = g.score
			g.persistHighScore()
		}
		if !g.spawnFood() {
			g.finish(true)
			return g.Snapshot()
		}
	} else {
		g.snake = g.snake[:len(g.snake)-1]
	}

	g.render()
	return g.Snapshot()
}

// finish moves the game into its terminal phase and tells the presenter.
func (g *Game) finish(won bool) {
	g.running = false
	g.over = true
	g.won = won
	if won {
		g.food = noFood
	}

	g.logger.Debug("game over", "won", won, "score", g.score, "length", len(g.snake))

	snap := g.Snapshot()
	if g.presenter != nil {
		g.presenter.Render(snap)
		g.presenter.ShowGameOver(snap)
	}
}

// spawnFood places food on a uniformly random free cell.
// Returns false when the snake covers the whole board.
func (g *Game) spawnFood() bool {
	occupied := make(map[Point]bool, len(g.snake))
	for _, seg := range g.snake {
		occupied[seg] = true
	}

	emptyCells := make([]Point, 0, GridSize*GridSize-len(g.snake))
	for y := range GridSize {
		for x := range GridSize {
			p := Point{X: x, Y: y}
			if !occupied[p] {
				emptyCells = append(emptyCells, p)
			}
		}
	}

	if len(emptyCells) == 0 {
		return false
	}

	g.food = emptyCells[g.rng.Intn(len(emptyCells))]
	return true
}

// isSnakeAt checks if the snake occupies the given point.
func (g *Game) isSnakeAt(p Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// persistHighScore writes the high score, unless the store already holds a
// larger one (another session may share it), in which case that one is adopted.
func (g *Game) persistHighScore() {
	if g.store == nil {
		return
	}

	stored, err := LoadHighScore(g.store)
	if err != nil {
		g.logger.Warn("could not read high score", "error", err)
	}
	if stored > g.highScore {
		g.highScore = stored
		return
	}

	if err := SaveHighScore(g.store, g.highScore); err != nil {
		g.logger.Warn("could not save high score", "score", g.highScore, "error", err)
	}
}

func (g *Game) render() {
	if g.presenter != nil {
		g.presenter.Render(g.Snapshot())
	}
}

// Phase derives the state machine position from the flags.
func (g *Game) Phase() Phase {
	switch {
	case g.won:
		return PhaseWon
	case g.over:
		return PhaseOver
	case g.running:
		return PhaseRunning
	case g.started:
		return PhasePaused
	default:
		return PhaseIdle
	}
}

// Running reports whether ticks are currently accepted.
func (g *Game) Running() bool {
	return g.running
}

// HighScore returns the best score known to this game.
func (g *Game) HighScore() int {
	return g.highScore
}

// --- Direction helpers ---

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirRight && d <= DirUp
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return d
	}
}

// Vector returns the unit step for d. Y grows downwards.
func (d Direction) Vector() Point {
	switch d {
	case DirUp:
		return Point{X: 0, Y: -1}
	case DirDown:
		return Point{X: 0, Y: 1}
	case DirLeft:
		return Point{X: -1, Y: 0}
	case DirRight:
		return Point{X: 1, Y: 0}
	default:
		return Point{}
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Score: %d, Best: %d, Phase: %s\n", g.tick, g.score, g.highScore, g.Phase())
	fmt.Fprintf(&b, "Snake len: %d, Direction: %s, Next: %s\n", len(g.snake), g.direction, g.nextDir)
	if len(g.snake) > 0 {
		fmt.Fprintf(&b, "Head: (%d, %d), Food: (%d, %d)\n", g.snake[0].X, g.snake[0].Y, g.food.X, g.food.Y)
	}
	return b.String()
}

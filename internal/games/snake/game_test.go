package snake

import (
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

// memStore is an in-memory Store.
type memStore struct {
	data   map[string]string
	getErr error
	setErr error
	sets   int
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (m *memStore) Get(key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.data[key] = value
	return nil
}

// recordingPresenter remembers what it was told.
type recordingPresenter struct {
	renders   []Snapshot
	gameOvers []Snapshot
}

func (r *recordingPresenter) Render(s Snapshot)       { r.renders = append(r.renders, s) }
func (r *recordingPresenter) ShowGameOver(s Snapshot) { r.gameOvers = append(r.gameOvers, s) }

func (r *recordingPresenter) last() Snapshot {
	return r.renders[len(r.renders)-1]
}

// newRunningGame returns a seeded game that has been started.
func newRunningGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	g := New(append([]Option{WithSeed(42)}, opts...)...)
	if phase := g.Toggle(); phase != PhaseRunning {
		t.Fatalf("Toggle() from idle = %v, expected running", phase)
	}
	return g
}

// place overrides the snake body and heading for scenario tests.
func (g *Game) place(body []Point, dir Direction) {
	g.snake = append([]Point(nil), body...)
	g.direction = dir
	g.nextDir = dir
}

func TestInitialState(t *testing.T) {
	g := New(WithSeed(1))
	s := g.Snapshot()

	if !reflect.DeepEqual(s.Snake, []Point{{X: 10, Y: 10}}) {
		t.Errorf("Initial snake = %v, expected [(10,10)]", s.Snake)
	}
	if s.Food != (Point{X: 15, Y: 15}) {
		t.Errorf("Initial food = %v, expected (15,15)", s.Food)
	}
	if s.Direction != DirRight {
		t.Errorf("Initial direction = %v, expected right", s.Direction)
	}
	if s.Score != 0 || s.Running || s.Over || s.Phase != PhaseIdle {
		t.Errorf("Unexpected initial flags: %+v", s)
	}
	if s.ButtonLabel() != "Start" {
		t.Errorf("ButtonLabel() = %q, expected Start", s.ButtonLabel())
	}
}

func TestTickEatsFood(t *testing.T) {
	g := newRunningGame(t)
	g.food = Point{X: 11, Y: 10}

	s := g.Tick()

	want := []Point{{X: 11, Y: 10}, {X: 10, Y: 10}}
	if !reflect.DeepEqual(s.Snake, want) {
		t.Errorf("Snake = %v, expected %v", s.Snake, want)
	}
	if s.Score != 10 {
		t.Errorf("Score = %d, expected 10", s.Score)
	}
	if s.Food == (Point{X: 11, Y: 10}) {
		t.Error("Food should have been relocated")
	}
	for _, seg := range s.Snake {
		if seg == s.Food {
			t.Errorf("Food regenerated on the snake at %v", s.Food)
		}
	}
	if s.Over {
		t.Error("Eating food should not end the game")
	}
}

func TestTickWallCollision(t *testing.T) {
	g := newRunningGame(t)
	g.place([]Point{{X: 0, Y: 5}}, DirLeft)

	s := g.Tick()

	if !s.Over || s.Running {
		t.Errorf("Expected over=true running=false, got over=%v running=%v", s.Over, s.Running)
	}
	if !reflect.DeepEqual(s.Snake, []Point{{X: 0, Y: 5}}) {
		t.Errorf("Snake should be unchanged after collision, got %v", s.Snake)
	}
	if s.Phase != PhaseOver || s.ButtonLabel() != "Play Again" {
		t.Errorf("Phase = %v, label = %q", s.Phase, s.ButtonLabel())
	}
}

func TestTickWallCollisionAllEdges(t *testing.T) {
	tests := []struct {
		name string
		head Point
		dir  Direction
	}{
		{"left", Point{X: 0, Y: 3}, DirLeft},
		{"right", Point{X: GridSize - 1, Y: 3}, DirRight},
		{"top", Point{X: 3, Y: 0}, DirUp},
		{"bottom", Point{X: 3, Y: GridSize - 1}, DirDown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newRunningGame(t)
			g.place([]Point{tc.head}, tc.dir)

			if s := g.Tick(); !s.Over {
				t.Errorf("Moving %v from %v should hit the wall", tc.dir, tc.head)
			}
		})
	}
}

func TestTickSelfCollision(t *testing.T) {
	g := newRunningGame(t)
	g.place([]Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 5, Y: 7}}, DirDown)

	s := g.Tick()

	if !s.Over {
		t.Fatal("Moving into (5,6) should be a self collision")
	}
	want := []Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 5, Y: 7}}
	if !reflect.DeepEqual(s.Snake, want) {
		t.Errorf("Snake = %v, expected unchanged %v", s.Snake, want)
	}
}

func TestTickIntoTailCollides(t *testing.T) {
	// A 2x2 loop: the head moves onto the cell the tail is about to leave.
	g := newRunningGame(t)
	g.place([]Point{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}}, DirDown)

	if s := g.Tick(); !s.Over {
		t.Error("Entering any existing snake cell, including the tail, ends the game")
	}
}

func TestToggleStateMachine(t *testing.T) {
	g := New(WithSeed(7))
	g.food = Point{X: 0, Y: 0}

	// Idle: ticks rejected
	before := g.Snapshot()
	if after := g.Tick(); !reflect.DeepEqual(before, after) {
		t.Error("Tick in idle should be a no-op")
	}

	if phase := g.Toggle(); phase != PhaseRunning {
		t.Fatalf("Toggle from idle = %v, expected running", phase)
	}
	s := g.Tick()
	if s.Head() != (Point{X: 11, Y: 10}) || s.Tick != 1 {
		t.Errorf("Tick while running should move the head, got %v (tick %d)", s.Head(), s.Tick)
	}

	if phase := g.Toggle(); phase != PhasePaused {
		t.Fatalf("Toggle from running = %v, expected paused", phase)
	}
	paused := g.Snapshot()
	if paused.ButtonLabel() != "Start" {
		t.Errorf("Paused label = %q, expected Start", paused.ButtonLabel())
	}
	if after := g.Tick(); !reflect.DeepEqual(paused, after) {
		t.Error("Tick while paused should be a no-op")
	}

	if phase := g.Toggle(); phase != PhaseRunning {
		t.Fatalf("Toggle from paused = %v, expected running", phase)
	}
	if s := g.Tick(); s.Head() != (Point{X: 12, Y: 10}) {
		t.Errorf("Resumed game should keep its state, head = %v", s.Head())
	}
}

func TestTickNoOpAfterGameOver(t *testing.T) {
	g := newRunningGame(t)
	g.place([]Point{{X: 0, Y: 0}}, DirUp)
	g.Tick()

	over := g.Snapshot()
	for range 5 {
		if s := g.Tick(); !reflect.DeepEqual(over, s) {
			t.Fatal("Tick after game over must not change state")
		}
	}
}

func TestToggleFromOverRestartsRunning(t *testing.T) {
	g := newRunningGame(t)
	g.food = Point{X: 11, Y: 10}
	g.Tick() // score 10
	g.place([]Point{{X: GridSize - 1, Y: 0}}, DirRight)
	g.Tick()
	if !g.Snapshot().Over {
		t.Fatal("Expected game over")
	}

	phase := g.Toggle()
	s := g.Snapshot()

	if phase != PhaseRunning || !s.Running || s.Over {
		t.Errorf("Toggle from over should start a fresh round, got %+v", s)
	}
	if s.Score != 0 || !reflect.DeepEqual(s.Snake, initialSnake()) || s.Food != initialFood() {
		t.Errorf("Fresh round should use initial values, got %+v", s)
	}
	if s.HighScore != 10 {
		t.Errorf("High score should survive restart, got %d", s.HighScore)
	}
}

func TestPlayAgain(t *testing.T) {
	g := newRunningGame(t)
	g.place([]Point{{X: 0, Y: 0}}, DirLeft)
	g.Tick()

	if phase := g.PlayAgain(); phase != PhaseRunning {
		t.Errorf("PlayAgain() = %v, expected running", phase)
	}
	if s := g.Snapshot(); s.Over || s.Tick != 0 {
		t.Errorf("PlayAgain should begin a new round, got %+v", s)
	}
}

func TestReset(t *testing.T) {
	g := newRunningGame(t)
	g.food = Point{X: 11, Y: 10}
	g.Tick()
	g.SetDirection(DirDown)

	g.Reset()
	s := g.Snapshot()

	if s.Phase != PhaseIdle || s.Running || s.Over {
		t.Errorf("Reset should return to idle, got %v", s.Phase)
	}
	if s.Score != 0 || len(s.Snake) != 1 || s.Direction != DirRight {
		t.Errorf("Reset should restore initial values, got %+v", s)
	}
	if g.nextDir != DirRight {
		t.Errorf("Reset should clear the buffered direction, got %v", g.nextDir)
	}
	if s.HighScore != 10 {
		t.Errorf("Reset keeps the high score, got %d", s.HighScore)
	}
}

func TestSetDirectionGating(t *testing.T) {
	g := New(WithSeed(3))

	if g.SetDirection(DirUp) {
		t.Error("Direction input before the first start should be ignored")
	}

	g.Toggle()
	if !g.SetDirection(DirUp) {
		t.Error("Direction input while running should be accepted")
	}

	g.Toggle() // paused
	if g.SetDirection(DirDown) {
		t.Error("Direction input while paused should be ignored")
	}
	if g.nextDir != DirUp {
		t.Errorf("Paused input must not change the buffer, got %v", g.nextDir)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := newRunningGame(t)

	if g.SetDirection(DirLeft) {
		t.Error("Should not allow reversal from right to left")
	}

	// Up is fine, but Left is still the reverse of the applied direction
	if !g.SetDirection(DirUp) {
		t.Fatal("Up should be accepted")
	}
	if g.SetDirection(DirLeft) {
		t.Error("Two presses within one tick must not reverse the snake")
	}

	s := g.Tick()
	if s.Direction != DirUp || s.Head() != (Point{X: 10, Y: 9}) {
		t.Errorf("Expected to move up to (10,9), got %v heading %v", s.Head(), s.Direction)
	}

	if g.SetDirection(DirDown) {
		t.Error("Should not allow reversal from up to down")
	}
	if !g.SetDirection(DirLeft) {
		t.Error("Left should be accepted after turning up")
	}
}

func TestSetDirectionInvalid(t *testing.T) {
	g := newRunningGame(t)
	if g.SetDirection(Direction(42)) {
		t.Error("Unknown directions should be rejected")
	}
}

func TestFoodSpawnValidity(t *testing.T) {
	g := New(WithSeed(999))
	g.place([]Point{{X: 3, Y: 3}, {X: 3, Y: 4}, {X: 3, Y: 5}, {X: 4, Y: 5}}, DirUp)

	for range 500 {
		if !g.spawnFood() {
			t.Fatal("spawnFood should succeed on a mostly empty board")
		}
		if !g.food.InBounds() {
			t.Errorf("Food spawned out of bounds at %v", g.food)
		}
		if g.isSnakeAt(g.food) {
			t.Errorf("Food spawned on snake at %v", g.food)
		}
	}
}

func TestFoodSpawnSingleFreeCell(t *testing.T) {
	g := New(WithSeed(5))
	body := make([]Point, 0, GridSize*GridSize-1)
	for _, p := range serpentine() {
		if p != (Point{X: 7, Y: 13}) {
			body = append(body, p)
		}
	}
	g.snake = body

	if !g.spawnFood() {
		t.Fatal("One free cell should still take food")
	}
	if g.food != (Point{X: 7, Y: 13}) {
		t.Errorf("Food = %v, expected the only free cell (7,13)", g.food)
	}
}

// serpentine walks the board row by row, alternating direction, so that
// consecutive points are always adjacent.
func serpentine() []Point {
	path := make([]Point, 0, GridSize*GridSize)
	for y := range GridSize {
		for i := range GridSize {
			x := i
			if y%2 == 1 {
				x = GridSize - 1 - i
			}
			path = append(path, Point{X: x, Y: y})
		}
	}
	return path
}

func TestFullBoardWins(t *testing.T) {
	p := &recordingPresenter{}
	g := newRunningGame(t, WithPresenter(p))

	path := serpentine()
	// Head at (1,0) moving left onto the last free cell (0,0)
	g.place(path[1:], DirLeft)
	g.food = path[0]

	s := g.Tick()

	if !s.Won || !s.Over || s.Running || s.Phase != PhaseWon {
		t.Fatalf("Filling the board should win, got %+v", s.Phase)
	}
	if len(s.Snake) != GridSize*GridSize {
		t.Errorf("Snake length = %d, expected %d", len(s.Snake), GridSize*GridSize)
	}
	if s.Food.InBounds() {
		t.Errorf("A full board has no food, got %v", s.Food)
	}
	if len(p.gameOvers) != 1 {
		t.Errorf("Presenter should see one game over, got %d", len(p.gameOvers))
	}
	if after := g.Tick(); !reflect.DeepEqual(after, s) {
		t.Error("Tick after winning should be a no-op")
	}
}

func TestLengthInvariantAndScoreProperties(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g := New(WithSeed(seed))
		g.Toggle()
		steer := rand.New(rand.NewSource(seed * 31))
		prevHigh := g.HighScore()

		for range 2000 {
			before := g.Snapshot()
			if before.Over {
				g.Toggle()
				continue
			}

			g.SetDirection(Direction(steer.Intn(4)))
			after := g.Tick()

			if after.Over {
				if !reflect.DeepEqual(after.Snake, before.Snake) {
					t.Fatalf("seed %d: collision must not move the snake", seed)
				}
			} else {
				ate := after.Score > before.Score
				wantLen := len(before.Snake)
				if ate {
					wantLen++
				}
				if len(after.Snake) != wantLen {
					t.Fatalf("seed %d: length %d -> %d (ate=%v)", seed, len(before.Snake), len(after.Snake), ate)
				}
				if ate {
					for _, seg := range after.Snake {
						if seg == after.Food {
							t.Fatalf("seed %d: food regenerated on snake at %v", seed, after.Food)
						}
					}
				}
			}

			if after.Direction == before.Direction.Opposite() && after.Tick > before.Tick {
				t.Fatalf("seed %d: snake reversed from %v to %v", seed, before.Direction, after.Direction)
			}
			if after.Score < 0 || after.Score%FoodReward != 0 {
				t.Fatalf("seed %d: score %d is not a non-negative multiple of %d", seed, after.Score, FoodReward)
			}
			if after.HighScore < prevHigh {
				t.Fatalf("seed %d: high score decreased %d -> %d", seed, prevHigh, after.HighScore)
			}
			prevHigh = after.HighScore
			if len(after.Snake) < 1 {
				t.Fatalf("seed %d: snake vanished", seed)
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	g1 := New(WithSeed(12345))
	g2 := New(WithSeed(12345))
	g1.Toggle()
	g2.Toggle()

	// Steer both toward the food with identical inputs
	for i := range 200 {
		switch i % 40 {
		case 5:
			g1.SetDirection(DirDown)
			g2.SetDirection(DirDown)
		case 10:
			g1.SetDirection(DirRight)
			g2.SetDirection(DirRight)
		case 25:
			g1.SetDirection(DirUp)
			g2.SetDirection(DirUp)
		case 30:
			g1.SetDirection(DirLeft)
			g2.SetDirection(DirLeft)
		}

		s1 := g1.Tick()
		s2 := g2.Tick()
		if !reflect.DeepEqual(s1, s2) {
			t.Fatalf("Snapshots diverged at tick %d:\n%+v\n%+v", i, s1, s2)
		}
	}
}

func TestHighScorePersisted(t *testing.T) {
	store := newMemStore()
	g := newRunningGame(t, WithStore(store))
	g.food = Point{X: 11, Y: 10}

	s := g.Tick()

	if s.HighScore != 10 {
		t.Errorf("HighScore = %d, expected 10", s.HighScore)
	}
	if store.data[HighScoreKey] != "10" {
		t.Errorf("Stored high score = %q, expected \"10\"", store.data[HighScoreKey])
	}
	if !s.NewHighScore() {
		t.Error("NewHighScore() should be true when score equals a positive high score")
	}
}

func TestHighScoreNotLoweredOrRewritten(t *testing.T) {
	store := newMemStore()
	store.data[HighScoreKey] = "50"

	g := newRunningGame(t, WithStore(store))
	if g.HighScore() != 50 {
		t.Fatalf("HighScore() = %d, expected 50 loaded from store", g.HighScore())
	}

	g.food = Point{X: 11, Y: 10}
	s := g.Tick()

	if s.HighScore != 50 || store.sets != 0 {
		t.Errorf("Score 10 must not touch a high score of 50 (high=%d, sets=%d)", s.HighScore, store.sets)
	}
	if s.NewHighScore() {
		t.Error("NewHighScore() should be false below the high score")
	}
}

func TestHighScoreAdoptsLargerStoredValue(t *testing.T) {
	store := newMemStore()
	g := newRunningGame(t, WithStore(store))

	// Another session raised the shared high score meanwhile
	store.data[HighScoreKey] = "90"
	g.food = Point{X: 11, Y: 10}
	s := g.Tick()

	if s.HighScore != 90 {
		t.Errorf("HighScore = %d, expected adopted 90", s.HighScore)
	}
	if store.data[HighScoreKey] != "90" {
		t.Errorf("Stored value was overwritten with %q", store.data[HighScoreKey])
	}
}

func TestHighScoreStoreFailures(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("disk on fire")
	store.setErr = errors.New("disk on fire")

	g := newRunningGame(t, WithStore(store))
	if g.HighScore() != 0 {
		t.Errorf("Unreadable store should read as 0, got %d", g.HighScore())
	}

	g.food = Point{X: 11, Y: 10}
	s := g.Tick()
	if s.Score != 10 || s.HighScore != 10 {
		t.Errorf("Store failures must not affect play, got score=%d high=%d", s.Score, s.HighScore)
	}
}

func TestLoadHighScore(t *testing.T) {
	tests := []struct {
		name    string
		stored  *string
		want    int
		wantErr bool
	}{
		{"absent", nil, 0, false},
		{"valid", ptr("120"), 120, false},
		{"garbage", ptr("lots"), 0, true},
		{"negative", ptr("-10"), 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore()
			if tc.stored != nil {
				store.data[HighScoreKey] = *tc.stored
			}
			got, err := LoadHighScore(store)
			if got != tc.want || (err != nil) != tc.wantErr {
				t.Errorf("LoadHighScore() = (%d, %v), expected (%d, err=%v)", got, err, tc.want, tc.wantErr)
			}
		})
	}

	if err := SaveHighScore(newMemStore(), -1); err == nil {
		t.Error("SaveHighScore should reject negative scores")
	}
}

func ptr(s string) *string { return &s }

func TestPresenterNotifications(t *testing.T) {
	p := &recordingPresenter{}
	g := New(WithSeed(9), WithPresenter(p))

	if len(p.renders) != 1 {
		t.Fatalf("New should render once, got %d", len(p.renders))
	}

	g.Toggle()
	g.food = Point{X: 11, Y: 10}
	g.Tick()

	last := p.last()
	if len(last.Snake) != 2 || last.Score != 10 {
		t.Errorf("Render must see the completed tick, got len=%d score=%d", len(last.Snake), last.Score)
	}
	for _, seg := range last.Snake {
		if seg == last.Food {
			t.Error("Rendered food must already be regenerated")
		}
	}

	g.place([]Point{{X: 0, Y: 0}}, DirUp)
	g.Tick()

	if len(p.gameOvers) != 1 {
		t.Fatalf("Expected one game over notification, got %d", len(p.gameOvers))
	}
	if !p.gameOvers[0].Over || p.gameOvers[0].Score != 10 {
		t.Errorf("Game over snapshot = %+v", p.gameOvers[0])
	}
	if !p.last().Over {
		t.Error("Presenter should have rendered the terminal state")
	}

	// No more game-over notifications while over
	g.Tick()
	if len(p.gameOvers) != 1 {
		t.Error("Ticks after game over must not notify again")
	}

	renders := len(p.renders)
	g.Reset()
	if len(p.renders) != renders+1 || p.last().Phase != PhaseIdle {
		t.Error("Reset should render the idle state")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	g := New(WithSeed(1))
	s := g.Snapshot()
	s.Snake[0] = Point{X: 0, Y: 0}

	if g.snake[0] != (Point{X: 10, Y: 10}) {
		t.Error("Mutating a snapshot must not change the game")
	}
}

func TestSnapshotBoard(t *testing.T) {
	s := Snapshot{
		Snake: []Point{{X: 2, Y: 2}, {X: 1, Y: 2}},
		Food:  Point{X: 5, Y: 6},
	}
	board := s.Board()

	if board[2][2] != CellHead {
		t.Errorf("(2,2) = %v, expected head", board[2][2])
	}
	if board[2][1] != CellBody {
		t.Errorf("(1,2) = %v, expected body", board[2][1])
	}
	if board[6][5] != CellFood {
		t.Errorf("(5,6) = %v, expected food", board[6][5])
	}
	if board[0][0] != CellEmpty {
		t.Errorf("(0,0) = %v, expected empty", board[0][0])
	}

	s.Food = noFood
	if b := s.Board(); b[6][5] != CellEmpty {
		t.Error("Absent food should not be drawn")
	}
}

func TestDirectionHelpers(t *testing.T) {
	pairs := map[Direction]Direction{
		DirUp:    DirDown,
		DirDown:  DirUp,
		DirLeft:  DirRight,
		DirRight: DirLeft,
	}
	for d, opp := range pairs {
		if d.Opposite() != opp {
			t.Errorf("%v.Opposite() = %v, expected %v", d, d.Opposite(), opp)
		}
		if v := d.Vector().Add(opp.Vector()); v != (Point{}) {
			t.Errorf("%v and %v vectors should cancel, got %v", d, opp, v)
		}
	}
	if DirUp.Vector() != (Point{X: 0, Y: -1}) {
		t.Errorf("Up should decrease y, got %v", DirUp.Vector())
	}
}

func TestDebugState(t *testing.T) {
	g := newRunningGame(t)
	g.SetDirection(DirDown)

	state := g.DebugState()
	for _, want := range []string{"Phase: running", "Direction: right, Next: down", "Head: (10, 10), Food: (15, 15)"} {
		if !strings.Contains(state, want) {
			t.Errorf("DebugState() = %q, expected it to contain %q", state, want)
		}
	}
}

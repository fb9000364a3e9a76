package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Layout dimensions of the board surface.
const (
	cellWidth    = 2
	BoardWidth   = snake.GridSize*cellWidth + 2 // Cells plus the border
	BoardHeight  = snake.GridSize + 2
	hudRows      = 2 // HUD and buttons
	LayoutWidth  = BoardWidth
	LayoutHeight = BoardHeight + hudRows
)

const (
	overlayWidth  = 26
	overlayHeight = 8
)

// Board presents snake snapshots on a core.Screen. It implements
// snake.Presenter and remembers where its buttons were last drawn so mouse
// clicks can be resolved to actions.
type Board struct {
	theme   Theme
	snap    snake.Snapshot
	overlay bool // Game-over surface visible

	toggleBtn    core.Rect
	resetBtn     core.Rect
	playAgainBtn core.Rect
}

var _ snake.Presenter = (*Board)(nil)

// NewBoard creates a board presenter with the given theme.
func NewBoard(theme Theme) *Board {
	return &Board{theme: theme}
}

// Render records the latest state. A state that is not over hides the
// game-over surface.
func (b *Board) Render(s snake.Snapshot) {
	b.snap = s
	if !s.Over {
		b.overlay = false
	}
}

// ShowGameOver records the final state and shows the game-over surface.
func (b *Board) ShowGameOver(s snake.Snapshot) {
	b.snap = s
	b.overlay = true
}

// OverlayVisible reports whether the game-over surface is shown.
func (b *Board) OverlayVisible() bool {
	return b.overlay
}

// Snapshot returns the last state the board was told about.
func (b *Board) Snapshot() snake.Snapshot {
	return b.snap
}

// Draw paints the HUD, buttons, grid and overlay, centered horizontally.
func (b *Board) Draw(screen *core.Screen) {
	screen.Clear()
	b.toggleBtn, b.resetBtn, b.playAgainBtn = core.Rect{}, core.Rect{}, core.Rect{}

	if screen.Width() < LayoutWidth || screen.Height() < LayoutHeight {
		b.drawTooSmall(screen)
		return
	}

	ox := (screen.Width() - LayoutWidth) / 2
	b.drawHUD(screen, ox, 0)
	b.drawButtons(screen, ox, 1)
	b.drawGrid(screen, ox, hudRows)
	if b.overlay {
		b.drawOverlay(screen, ox, hudRows)
	}
}

func (b *Board) drawTooSmall(screen *core.Screen) {
	_, cy := screen.Bounds().Center()
	y := cy - 1
	screen.DrawTextCentered(y, "Window too small", core.ColorYellow)
	screen.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", LayoutWidth, LayoutHeight), core.ColorGray)
}

func (b *Board) drawHUD(screen *core.Screen, ox, y int) {
	screen.DrawTextColored(ox, y, "SNAKE", core.ColorBrightGreen)

	scores := fmt.Sprintf("Score: %d  Best: %d", b.snap.Score, b.snap.HighScore)
	screen.DrawTextColored(ox+LayoutWidth-len(scores), y, scores, core.ColorWhite)
}

func (b *Board) drawButtons(screen *core.Screen, ox, y int) {
	b.toggleBtn = drawButton(screen, ox, y, b.snap.ButtonLabel(), core.ColorBrightCyan)

	reset := buttonText("Reset")
	b.resetBtn = drawButton(screen, ox+LayoutWidth-len(reset), y, "Reset", core.ColorCyan)

	status := statusText(b.snap.Phase)
	if status != "" {
		x := b.toggleBtn.Right() + (b.resetBtn.X-b.toggleBtn.Right()-len(status))/2
		screen.DrawTextColored(x, y, status, core.ColorGray)
	}
}

func (b *Board) drawGrid(screen *core.Screen, ox, oy int) {
	screen.DrawBox(core.NewRect(ox, oy, BoardWidth, BoardHeight), b.theme.Border)

	cells := b.snap.Board()
	for y := range snake.GridSize {
		for x := range snake.GridSize {
			g := b.glyphFor(cells[y][x])
			sx, sy := ox+1+x*cellWidth, oy+1+y
			screen.SetColored(sx, sy, g.Runes[0], g.Color)
			screen.SetColored(sx+1, sy, g.Runes[1], g.Color)
		}
	}
}

func (b *Board) glyphFor(kind snake.CellKind) CellGlyph {
	switch kind {
	case snake.CellHead:
		return b.theme.Head
	case snake.CellBody:
		return b.theme.Body
	case snake.CellFood:
		return b.theme.Food
	default:
		return b.theme.Empty
	}
}

func (b *Board) drawOverlay(screen *core.Screen, ox, oy int) {
	r := core.NewRect(
		ox+(BoardWidth-overlayWidth)/2,
		oy+(BoardHeight-overlayHeight)/2,
		overlayWidth, overlayHeight,
	)
	screen.DrawRect(r, ' ')
	screen.DrawBox(r, core.ColorBrightWhite)

	center := func(y int, text string, c core.Color) {
		screen.DrawTextColored(r.X+(r.W-len([]rune(text)))/2, y, text, c)
	}

	title, titleColor := "Game Over!", core.ColorBrightRed
	if b.snap.Won {
		title, titleColor = "You Win!", core.ColorBrightGreen
	}
	center(r.Y+1, title, titleColor)
	center(r.Y+3, fmt.Sprintf("Final Score: %d", b.snap.Score), core.ColorWhite)
	if b.snap.NewHighScore() {
		center(r.Y+4, "New High Score!", core.ColorBrightYellow)
	}

	label := buttonText("Play Again")
	b.playAgainBtn = drawButton(screen, r.X+(r.W-len(label))/2, r.Y+6, "Play Again", core.ColorBrightCyan)
}

// HitTest resolves a click at screen coordinates to an action.
// The overlay sits above the board, so its button wins when visible.
func (b *Board) HitTest(x, y int) core.Action {
	switch {
	case b.overlay && b.playAgainBtn.Contains(x, y):
		return core.ActionPlayAgain
	case b.toggleBtn.Contains(x, y):
		return core.ActionToggle
	case b.resetBtn.Contains(x, y):
		return core.ActionReset
	default:
		return core.ActionNone
	}
}

func buttonText(label string) string {
	return "[ " + label + " ]"
}

// drawButton draws a bracketed label and returns the clickable area.
func drawButton(screen *core.Screen, x, y int, label string, c core.Color) core.Rect {
	text := buttonText(label)
	screen.DrawTextColored(x, y, text, c)
	return core.NewRect(x, y, len([]rune(text)), 1)
}

func statusText(p snake.Phase) string {
	switch p {
	case snake.PhaseIdle:
		return "press space"
	case snake.PhasePaused:
		return "paused"
	default:
		return ""
	}
}

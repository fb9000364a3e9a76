package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Model is the Bubble Tea model for one snake game.
// The game and its presenter live behind pointers, so copies of the model
// made by Bubble Tea share them.
type Model struct {
	ctrl      *snake.Controller
	board     *Board
	scheduler *TeaScheduler
	screen    *core.Screen
	keys      KeyMap
	help      help.Model
	config    core.RuntimeConfig
	logger    *log.Logger
	quitting  bool

	screenshotDir string
}

// NewModel creates a model with a fresh game in the Idle phase.
// store may be nil, in which case the high score lives only in memory.
func NewModel(store snake.Store, cfg core.RuntimeConfig, theme Theme, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	board := NewBoard(theme)
	scheduler := NewTeaScheduler()
	game := snake.New(
		snake.WithStore(store),
		snake.WithPresenter(board),
		snake.WithLogger(logger),
		snake.WithSeed(cfg.Seed),
	)

	m := Model{
		ctrl:      snake.NewController(game, scheduler),
		board:     board,
		scheduler: scheduler,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		config:    cfg,
		logger:    logger,
	}
	m.screen = core.NewScreen(cfg.ScreenW, m.screenRows(cfg.ScreenH))
	m.help.Width = cfg.ScreenW

	if home, err := os.UserHomeDir(); err == nil {
		m.screenshotDir = filepath.Join(home, ".snake", "screenshots")
	}

	return m
}

// Init does nothing: the game waits in Idle until the player starts it.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TimerMsg:
		m.scheduler.Fire(msg)
		return m, m.scheduler.Flush()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.ctrl.Stop()
		m.quitting = true
		return m, tea.Quit

	case core.ActionScreenshot:
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("could not save screenshot", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil

	case core.ActionPlayAgain:
		if !m.board.OverlayVisible() {
			return m, nil
		}
		m.ctrl.Apply(action)

	default:
		m.ctrl.Apply(action)
	}

	return m, m.scheduler.Flush()
}

// handleMouse resolves left clicks on the buttons.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	// Hit areas come from the last drawn frame
	m.board.Draw(m.screen)
	if action := m.board.HitTest(msg.X, msg.Y); action != core.ActionNone {
		m.ctrl.Apply(action)
	}
	return m, m.scheduler.Flush()
}

// handleResize processes window resize events. The game keeps its state.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, m.screenRows(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// screenRows leaves the last terminal row for the help footer when the
// board fits without it.
func (m Model) screenRows(height int) int {
	if height > LayoutHeight {
		return height - 1
	}
	return height
}

// saveScreenshot writes the current frame as plain text, followed by a
// dump of the game state.
func (m Model) saveScreenshot() (string, error) {
	if m.screenshotDir == "" {
		return "", errors.New("no screenshot directory")
	}
	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		return "", fmt.Errorf("create screenshot directory: %w", err)
	}

	m.board.Draw(m.screen)

	filename := fmt.Sprintf("snake_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(m.screenshotDir, filename)
	content := m.screen.String() + "\n\n" + m.Game().DebugState()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.board.Draw(m.screen)
	out := RenderScreen(m.screen)

	if m.config.ScreenH > LayoutHeight {
		out += "\n" + helpStyle.Render(m.help.View(m.keys))
	}
	return out
}

// Game returns the underlying game.
func (m Model) Game() *snake.Game {
	return m.ctrl.Game()
}

// Quitting reports whether the player asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program on the local terminal and blocks until
// the player quits.
func Run(store snake.Store, cfg core.RuntimeConfig, theme Theme, logger *log.Logger) error {
	model := NewModel(store, cfg, theme, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}

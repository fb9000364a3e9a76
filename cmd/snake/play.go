package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game in this terminal.

Controls:
  Arrows/WASD  - Steer
  Space        - Start/Pause
  R            - Reset
  Enter        - Play again (after game over)
  Ctrl+S       - Screenshot to ~/.snake/screenshots
  Q/Ctrl+C     - Quit

The mouse works too: click the buttons above the board.

Examples:
  snake play
  snake play --seed 42
  snake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The game owns the terminal, so logs only go to a file when one is set
	var logOut io.Writer = io.Discard
	var logFile *os.File
	if cfg.Log.File != "" {
		logFile, err = os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		} else {
			logOut = logFile
		}
	}
	logger := newLogger(cfg.Log, logOut, "snake")

	runtime := core.DefaultConfig()
	runtime.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}

	st, store := openStore(cfg.Storage.Path, logger)
	if st == nil {
		fmt.Fprintln(os.Stderr, "Warning: could not open high score database, playing without it")
	}

	runErr := tui.Run(store, runtime, loadTheme(cfg.Theme, logger), logger)

	// Close resources before potential exit
	if st != nil {
		st.Close()
	}
	if logFile != nil {
		logFile.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// snake is the classic Snake game for the terminal.
//
// Usage:
//
//	snake                    - Play a game (same as `snake play`)
//	snake play               - Play a game
//	snake serve              - Start SSH server for remote play
//	snake best [--clear]     - Show or clear the high score
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.snake/config.yaml, ./configs/snake.yaml)
//	--db <path>         - Database path (default: ~/.snake/snake.db)
//	--seed <value>      - RNG seed for reproducible food placement
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake is the classic game: steer the snake to the food, grow,
and avoid the walls and your own tail.

Available commands:
  play     - Play a game (default)
  serve    - Start SSH server for remote play
  best     - Show or clear the high score

Examples:
  snake
  snake play --seed 42
  snake serve --ssh :2222
  snake best --clear`,
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to high score database (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(bestCmd)
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}

// newLogger creates a logger writing to w. An invalid level falls back to
// info and is reported through the returned logger.
func newLogger(cfg config.LogConfig, w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})

	lvl, err := cfg.ParseLevel()
	if err != nil {
		logger.Warn("using info level", "error", err)
	}
	logger.SetLevel(lvl)
	return logger
}

// loadTheme builds the board theme, falling back to the default look.
func loadTheme(cfg config.ThemeConfig, logger *log.Logger) tui.Theme {
	theme, err := tui.NewTheme(cfg)
	if err != nil {
		logger.Warn("using default theme", "error", err)
		return tui.DefaultTheme()
	}
	return theme
}

// openStore opens the high score database. On failure the game still runs,
// so the error is only logged and a nil store is returned.
func openStore(path string, logger *log.Logger) (*storage.Store, snake.Store) {
	st, err := storage.Open(path)
	if err != nil {
		logger.Warn("could not open high score database, scores will not persist", "path", path, "error", err)
		return nil, nil
	}
	return st, st
}

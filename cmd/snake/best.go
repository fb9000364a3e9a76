package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var flagClear bool

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Show the high score",
	Long: `Display the persisted high score, or clear it with --clear.

Examples:
  snake best
  snake best --clear
  snake best --db ./snake.db`,
	Args: cobra.NoArgs,
	Run:  runBest,
}

func init() {
	bestCmd.Flags().BoolVar(&flagClear, "clear", false, "Forget the high score")
}

func runBest(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening high score database: %v\n", err)
		os.Exit(1)
	}

	if flagClear {
		err = store.Delete(snake.HighScoreKey)
		store.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing high score: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("High score cleared.")
		return
	}

	entry, lookupErr := store.Lookup(snake.HighScoreKey)
	best, scoreErr := snake.LoadHighScore(store)
	store.Close()

	if lookupErr != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving high score: %v\n", lookupErr)
		os.Exit(1)
	}
	if scoreErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", scoreErr)
	}

	if entry == nil {
		fmt.Println("No high score recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake' to set the first one!")
		return
	}

	fmt.Printf("Best: %d\n", best)
	if !entry.UpdatedAt.IsZero() {
		fmt.Printf("Set:  %s\n", entry.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

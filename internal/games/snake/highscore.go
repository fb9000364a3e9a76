package snake

import (
	"fmt"
	"strconv"
)

// HighScoreKey is the key the best score is persisted under.
const HighScoreKey = "snakeHighScore"

// Store is a string key/value persistence surface.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
}

// Presenter is told about every completed state change.
type Presenter interface {
	// Render is called after each mutation with the resulting state.
	Render(s Snapshot)
	// ShowGameOver is called once when a round ends (collision or full board).
	ShowGameOver(s Snapshot)
}

// LoadHighScore reads the persisted high score. Missing keys read as 0.
// A corrupt value also reads as 0, with an error describing it.
func LoadHighScore(s Store) (int, error) {
	raw, ok, err := s.Get(HighScoreKey)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}

	score, err := strconv.Atoi(raw)
	if err != nil || score < 0 {
		return 0, fmt.Errorf("snake: invalid stored high score %q", raw)
	}
	return score, nil
}

// SaveHighScore persists score as the high score.
func SaveHighScore(s Store, score int) error {
	if score < 0 {
		return fmt.Errorf("snake: negative high score %d", score)
	}
	return s.Set(HighScoreKey, strconv.Itoa(score))
}

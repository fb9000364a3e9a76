// Package config provides YAML-based configuration loading for the game
// and its hosting surfaces.
package config

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Config contains all user-tunable settings. Gameplay rules are fixed and
// deliberately absent.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	SSH     SSHConfig     `yaml:"ssh"`
	Log     LogConfig     `yaml:"log"`
	Theme   ThemeConfig   `yaml:"theme"`
}

// StorageConfig locates the high score database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// SSHConfig configures `snake serve`.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LogConfig configures the charmbracelet logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// ThemeConfig defines how board cells are drawn.
type ThemeConfig struct {
	Head   CellStyle `yaml:"head"`
	Body   CellStyle `yaml:"body"`
	Food   CellStyle `yaml:"food"`
	Empty  CellStyle `yaml:"empty"`
	Border CellStyle `yaml:"border"`
}

// CellStyle is a glyph (two columns per board cell) and a color name.
type CellStyle struct {
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

// ParseLevel converts the configured level to a log.Level.
// An empty level means info.
func (c LogConfig) ParseLevel() (log.Level, error) {
	if c.Level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(c.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("config: invalid log level %q: %w", c.Level, err)
	}
	return lvl, nil
}

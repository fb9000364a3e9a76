package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Path: "~/.snake/snake.db",
		},
		SSH: SSHConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
		Theme: ThemeConfig{
			Head:   CellStyle{Glyph: "██", Color: "bright_green"},
			Body:   CellStyle{Glyph: "▓▓", Color: "green"},
			Food:   CellStyle{Glyph: "● ", Color: "bright_red"},
			Empty:  CellStyle{Glyph: "· ", Color: "gray"},
			Border: CellStyle{Color: "white"},
		},
	}
}

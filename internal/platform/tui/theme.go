package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// CellGlyph is how one board cell is drawn: two terminal columns and a color.
type CellGlyph struct {
	Runes [2]rune
	Color core.Color
}

// Theme holds the glyphs for every kind of board cell.
type Theme struct {
	Head   CellGlyph
	Body   CellGlyph
	Food   CellGlyph
	Empty  CellGlyph
	Border core.Color
}

// DefaultTheme returns the built-in look.
func DefaultTheme() Theme {
	return Theme{
		Head:   CellGlyph{Runes: [2]rune{'█', '█'}, Color: core.ColorBrightGreen},
		Body:   CellGlyph{Runes: [2]rune{'▓', '▓'}, Color: core.ColorGreen},
		Food:   CellGlyph{Runes: [2]rune{'●', ' '}, Color: core.ColorBrightRed},
		Empty:  CellGlyph{Runes: [2]rune{'·', ' '}, Color: core.ColorGray},
		Border: core.ColorWhite,
	}
}

// NewTheme builds a theme from config. Fields left empty keep their
// defaults; an unknown color name is an error.
func NewTheme(cfg config.ThemeConfig) (Theme, error) {
	t := DefaultTheme()

	fields := []struct {
		name  string
		style config.CellStyle
		dst   *CellGlyph
	}{
		{"head", cfg.Head, &t.Head},
		{"body", cfg.Body, &t.Body},
		{"food", cfg.Food, &t.Food},
		{"empty", cfg.Empty, &t.Empty},
	}

	for _, f := range fields {
		if f.style.Glyph != "" {
			f.dst.Runes = glyphRunes(f.style.Glyph)
		}
		if f.style.Color != "" {
			c, ok := core.ParseColor(f.style.Color)
			if !ok {
				return DefaultTheme(), fmt.Errorf("theme: unknown %s color %q", f.name, f.style.Color)
			}
			f.dst.Color = c
		}
	}

	if cfg.Border.Color != "" {
		c, ok := core.ParseColor(cfg.Border.Color)
		if !ok {
			return DefaultTheme(), fmt.Errorf("theme: unknown border color %q", cfg.Border.Color)
		}
		t.Border = c
	}

	return t, nil
}

// glyphRunes fits s into exactly two columns. A single rune is padded with
// a space; anything past the second rune is dropped.
func glyphRunes(s string) [2]rune {
	out := [2]rune{' ', ' '}
	i := 0
	for _, r := range s {
		if i == len(out) {
			break
		}
		out[i] = r
		i++
	}
	return out
}

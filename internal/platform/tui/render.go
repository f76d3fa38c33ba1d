package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/settings"
)

// Palette maps core colors to terminal styles.
type Palette map[core.Color]lipgloss.Style

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

var palettes = map[string]Palette{
	settings.ThemeClassic: {
		core.ColorDefault: lipgloss.NewStyle(),
		core.ColorRed:     fg("1"),
		core.ColorGreen:   fg("2"),
		core.ColorYellow:  fg("3"),
		core.ColorBlue:    fg("4"),
		core.ColorMagenta: fg("5"),
		core.ColorCyan:    fg("6"),
		core.ColorWhite:   fg("7"),
		core.ColorOrange:  fg("208"),
		core.ColorGray:    fg("245"),
	},
	settings.ThemeNeon: {
		core.ColorDefault: fg("231"),
		core.ColorRed:     fg("197"),
		core.ColorGreen:   fg("118"),
		core.ColorYellow:  fg("226"),
		core.ColorBlue:    fg("39"),
		core.ColorMagenta: fg("201"),
		core.ColorCyan:    fg("51"),
		core.ColorWhite:   fg("231"),
		core.ColorOrange:  fg("214"),
		core.ColorGray:    fg("141"),
	},
	// mono renders everything unstyled.
	settings.ThemeMono: {},
}

// PaletteFor returns the palette of a theme, falling back to classic.
func PaletteFor(theme string) Palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes[settings.ThemeClassic]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one styled run.
func RenderScreen(s *core.Screen, p Palette) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := p[startColor]
			if !ok {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

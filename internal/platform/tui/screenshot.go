package tui

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"

	"github.com/vovakirdan/mini-arcade/internal/core"
)

// Cell size of the PNG export, matching the 7x13 built-in font.
const (
	cellW = 7
	cellH = 13
)

var cellColors = map[core.Color]color.RGBA{
	core.ColorDefault: {220, 220, 220, 255},
	core.ColorRed:     {220, 50, 47, 255},
	core.ColorGreen:   {133, 153, 0, 255},
	core.ColorYellow:  {181, 137, 0, 255},
	core.ColorBlue:    {38, 139, 210, 255},
	core.ColorMagenta: {211, 54, 130, 255},
	core.ColorCyan:    {42, 161, 152, 255},
	core.ColorWhite:   {238, 232, 213, 255},
	core.ColorOrange:  {203, 75, 22, 255},
	core.ColorGray:    {147, 161, 161, 255},
}

// SaveScreenshot writes the screen as <slug>_<timestamp>.txt and .png into
// dir and returns the PNG path.
func SaveScreenshot(s *core.Screen, dir, slug string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: cannot create %s: %w", dir, err)
	}
	base := filepath.Join(dir, fmt.Sprintf("%s_%s", slug, now.Format("20060102_150405")))

	if err := os.WriteFile(base+".txt", []byte(s.String()), 0o600); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	png := base + ".png"
	if err := RenderPNG(s).SavePNG(png); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return png, nil
}

// RenderPNG draws the screen onto an image context. Block glyphs become
// filled cells, everything else is drawn as text.
func RenderPNG(s *core.Screen) *gg.Context {
	dc := gg.NewContext(max(s.Width(), 1)*cellW, max(s.Height(), 1)*cellH)
	dc.SetColor(color.RGBA{12, 12, 28, 255})
	dc.Clear()

	for y := range s.Height() {
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Rune == ' ' || cell.Rune == 0 {
				continue
			}
			c, ok := cellColors[cell.Color]
			if !ok {
				c = cellColors[core.ColorDefault]
			}
			dc.SetColor(c)
			px, py := float64(x*cellW), float64(y*cellH)
			if cell.Rune > 0x7f {
				dc.DrawRectangle(px+1, py+2, cellW-2, cellH-4)
				dc.Fill()
				continue
			}
			dc.DrawString(string(cell.Rune), px, py+cellH-3)
		}
	}
	return dc
}

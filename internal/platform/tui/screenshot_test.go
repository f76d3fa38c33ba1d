package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/mini-arcade/internal/core"
)

func TestSaveScreenshotWritesFiles(t *testing.T) {
	s := core.NewScreen(10, 3)
	s.DrawText(0, 0, "Score 10")
	s.SetColored(2, 2, '█', core.ColorGreen)

	dir := filepath.Join(t.TempDir(), "shots")
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	png, err := SaveScreenshot(s, dir, "snake", now)
	if err != nil {
		t.Fatalf("SaveScreenshot() error: %v", err)
	}
	if want := filepath.Join(dir, "snake_20260102_030405.png"); png != want {
		t.Errorf("path = %s, expected %s", png, want)
	}
	if info, err := os.Stat(png); err != nil || info.Size() == 0 {
		t.Errorf("png not written: %v", err)
	}
	text, err := os.ReadFile(strings.TrimSuffix(png, ".png") + ".txt")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(text), "Score 10") {
		t.Errorf("text = %q", text)
	}
}

func TestRenderPNGSize(t *testing.T) {
	dc := RenderPNG(core.NewScreen(4, 2))
	if dc.Width() != 4*cellW || dc.Height() != 2*cellH {
		t.Errorf("size = %dx%d", dc.Width(), dc.Height())
	}
}

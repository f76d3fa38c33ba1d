package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mini-arcade/internal/platform/tui"
	"github.com/vovakirdan/mini-arcade/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game. The game may be given by slug or id.

Controls:
  Arrows/WASD  - Move, steer or turn
  Space/F      - Fire
  Mouse drag   - Virtual joystick, tap to fire
  P            - Pause
  R            - Restart
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play snake
  arcade play 3
  arcade play asteroids-time --difficulty hard
  arcade play pong --game-config ./my-pong.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	info, err := resolveGame(args[0])
	if err != nil {
		return err
	}

	width, height := terminalSize()
	svc, runs := openServices()
	if runs != nil {
		defer runs.Close()
	}

	game, err := registry.Create(info.ID, svc.Deps())
	if err != nil {
		return err
	}
	return tui.RunGame(game, svc, runtimeConfig(width, height))
}

// terminalSize returns the size of stdout, falling back to 80x24.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

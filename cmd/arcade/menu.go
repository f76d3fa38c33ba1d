package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mini-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, press Esc to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Scoreboard
  T            - Cycle theme
  M            - Toggle sound
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	width, height := terminalSize()
	svc, runs := openServices()
	if runs != nil {
		defer runs.Close()
	}
	return tui.RunSession(svc, runtimeConfig(width, height))
}

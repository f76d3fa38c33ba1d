// arcade is a real-time arcade platform for playing retro-style games in the terminal.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Serve the arcade over SSH and the score API over HTTP
//	arcade scores [game]     - Show high scores
//	arcade sim <game>        - Run a game headless with empty input
//	arcade settings          - Show or change preferences
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default from arcade.yaml, 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--config <path>      - Application config file (arcade.yaml)
//	--difficulty <name>  - Difficulty preset: easy, normal, hard
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/mini-arcade/internal/games/asteroids"
	_ "github.com/vovakirdan/mini-arcade/internal/games/invaders"
	_ "github.com/vovakirdan/mini-arcade/internal/games/pong"
	_ "github.com/vovakirdan/mini-arcade/internal/games/snake"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagAppConfig  string
	flagGameConfig string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Mini Arcade - Play retro games in your terminal",
	Long: `Mini Arcade is a terminal-based gaming platform with real-time
classic-style games: Snake, Pong, Asteroids and Invaders.

Available commands:
  list      - Show all available games
  play      - Play a specific game directly
  menu      - Interactive game picker menu
  serve     - SSH server for remote play and HTTP score API
  scores    - View high scores and run history
  sim       - Run a game headless
  settings  - Show or change preferences

Examples:
  arcade list
  arcade play snake
  arcade play 3 --difficulty hard
  arcade menu
  arcade serve --ssh :2222 --http :8080
  arcade scores asteroids`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		teardown()
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = value from arcade.yaml)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from arcade.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagAppConfig, "config", "", "Path to arcade.yaml")
	rootCmd.PersistentFlags().StringVar(&flagGameConfig, "game-config", "", "Path to a game config file")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(settingsCmd)
}

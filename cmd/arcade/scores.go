package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mini-arcade/internal/platform/tui"
	"github.com/vovakirdan/mini-arcade/internal/registry"
	"github.com/vovakirdan/mini-arcade/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Without arguments, show the best score of every game.
With a game, show its best score, statistics and top runs.

Examples:
  arcade scores
  arcade scores snake
  arcade scores asteroids-time --limit 20
  arcade scores pong --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the best score and run history of the game")
}

func runScores(cmd *cobra.Command, args []string) error {
	svc, runs := openServices()
	if runs != nil {
		defer runs.Close()
	}
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		if flagScoresClear {
			return fmt.Errorf("--clear needs a game")
		}
		printBests(out, svc)
		return nil
	}

	info, err := resolveGame(args[0])
	if err != nil {
		return err
	}

	if flagScoresClear {
		svc.Scores.Clear(info.ID)
		if runs != nil {
			if err := runs.ClearRuns(info.ID); err != nil {
				return err
			}
		}
		logger.Info("scores cleared", "game", info.Slug)
		fmt.Fprintf(out, "Cleared scores for %s.\n", info.Title)
		return nil
	}

	fmt.Fprintf(out, "High Scores - %s\n", info.Title)
	fmt.Fprintln(out)

	if best, ok := svc.Scores.Best(info.ID); ok {
		fmt.Fprintf(out, "Best: %s\n", tui.FormatScore(info.Order, best))
	} else {
		fmt.Fprintln(out, "No best score recorded yet.")
	}

	if runs == nil {
		return nil
	}
	return printRuns(out, runs, info)
}

func printBests(out io.Writer, svc tui.Services) {
	fmt.Fprintln(out, "Best scores:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-24s  %s\n", "Game", "Best")
	fmt.Fprintf(out, "  %-24s  %s\n", "----", "----")
	for _, g := range registry.List() {
		best := "-"
		if v, ok := svc.Scores.Best(g.ID); ok {
			best = tui.FormatScore(g.Order, v)
		}
		fmt.Fprintf(out, "  %-24s  %s\n", g.Title, best)
	}
}

func printRuns(out io.Writer, runs *storage.Store, info registry.Info) error {
	stats, err := runs.Stats(info.ID)
	if err != nil {
		return err
	}
	top, err := runs.TopRuns(info.ID, info.Order, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Runs: %d  Wins: %d  Average: %.1f\n", stats.Runs, stats.Wins, stats.AvgScore)
	fmt.Fprintln(out)

	if len(top) == 0 {
		fmt.Fprintf(out, "Play 'arcade play %s' to set the first high score!\n", info.Slug)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %-6s  %s\n", "Rank", "Score", "Result", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %-6s  %s\n", "----", "-----", "------", "----")
	for i, r := range top {
		fmt.Fprintf(out, "  %-4d  %-10s  %-6s  %s\n",
			i+1, tui.FormatScore(info.Order, r.Score), r.Phase, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

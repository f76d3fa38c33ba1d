package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mini-arcade/internal/registry"
	"github.com/vovakirdan/mini-arcade/internal/scores"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all games registered in the arcade.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	games := registry.List()

	if len(games) == 0 {
		fmt.Fprintln(out, "No games available.")
		return
	}

	fmt.Fprintln(out, "Available games:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxSlugLen := len("Slug")
	for _, g := range games {
		maxSlugLen = max(maxSlugLen, len(g.Slug))
	}

	fmt.Fprintf(out, "  %-3s  %-*s  %-7s  %s\n", "ID", maxSlugLen, "Slug", "Scoring", "Title")
	fmt.Fprintf(out, "  %-3s  %-*s  %-7s  %s\n", "--", maxSlugLen, "----", "-------", "-----")

	for _, g := range games {
		scoring := "points"
		if g.Order == scores.LowerIsBetter {
			scoring = "time"
		}
		fmt.Fprintf(out, "  %-3d  %-*s  %-7s  %s\n", g.ID, maxSlugLen, g.Slug, scoring, g.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'arcade play <slug>' to play a game.")
}

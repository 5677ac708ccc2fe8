package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixel-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every registered game with its best recorded score.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return nil
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	width := len("ID")
	for _, g := range games {
		width = max(width, len(g.ID))
	}

	fmt.Println("Available games:")
	fmt.Println()
	fmt.Printf("  %-*s  %-14s  %s\n", width, "ID", "Title", "Best")
	fmt.Printf("  %-*s  %-14s  %s\n", width, "--", "-----", "----")
	for _, g := range games {
		best := "-"
		if store != nil {
			if hi, err := store.HighScore(g.ID); err == nil && hi > 0 {
				best = fmt.Sprint(hi)
			}
		}
		fmt.Printf("  %-*s  %-14s  %s\n", width, g.ID, g.Title, best)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
	return nil
}

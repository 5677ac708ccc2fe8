package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixel-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game and Tab to see
the high scores. Esc in a game returns to the menu.

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --difficulty easy --mute
  arcade menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	addGameFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	settings, err := gameSettings()
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	player, closeAudio := newPlayer(logger)
	defer closeAudio()

	cfg := runtimeConfig()
	cfg.Autopilot = flagAutopilot
	cfg.Touch = flagTouch

	ctx, cancel := signalContext()
	defer cancel()

	return tui.RunSession(ctx, tui.SessionConfig{
		Runtime:  cfg,
		Settings: settings,
		Store:    store,
		Player:   localPlayer(),
		Audio:    player,
		Logger:   logger,
		Substeps: flagSubsteps,
		Stats:    flagStats,
	})
}

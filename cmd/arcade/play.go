package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixel-arcade/internal/audio"
	"github.com/vovakirdan/pixel-arcade/internal/config"
	"github.com/vovakirdan/pixel-arcade/internal/platform/tui"
	"github.com/vovakirdan/pixel-arcade/internal/registry"
	"github.com/vovakirdan/pixel-arcade/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagAutopilot  bool
	flagTouch      bool
	flagMute       bool
	flagStats      bool
	flagDebug      bool
	flagSubsteps   int
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Space      - Jump / launch
  Up/W       - Long jump
  Down/S     - Duck
  Left/Right - Move the paddle (the mouse works too)
  P          - Pause
  Tab        - Frame statistics
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower and more lives
  normal - The config as written
  hard   - Faster and fewer lives

Examples:
  arcade play dino
  arcade play dino --autopilot
  arcade play breakout --difficulty hard
  arcade play dino --debug
  arcade play breakout --config ./my-breakout.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().BoolVar(&flagDebug, "debug", false, "Open the collision lab (dino)")
}

// addGameFlags registers the flags shared by play and menu.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	cmd.Flags().BoolVar(&flagAutopilot, "autopilot", false, "Let the computer play")
	cmd.Flags().BoolVar(&flagTouch, "touch", false, "Touch profile: gentler spawns, heavier gravity")
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	cmd.Flags().BoolVar(&flagStats, "stats", false, "Show frame statistics")
	cmd.Flags().IntVar(&flagSubsteps, "substeps", 0, "Simulation substeps per frame (0 = default)")
}

// gameSettings builds the registry settings from the flags.
func gameSettings() (registry.Settings, error) {
	s := registry.Settings{ConfigPath: flagConfig}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return s, err
		}
		s.Preset = preset
	}
	return s, nil
}

// newPlayer opens the speaker unless muted. The returned func releases it.
func newPlayer(logger *log.Logger) (audio.Player, func()) {
	if flagMute {
		return audio.Silent{}, func() {}
	}
	synth := audio.NewSynth(audio.DefaultVolume, logger.WithPrefix("audio"))
	return synth, synth.Close
}

// signalContext is canceled on interrupt or termination.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	settings, err := gameSettings()
	if err != nil {
		return err
	}
	game, err := registry.Create(gameID, settings)
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
	cfg.Debug = flagDebug

	ctx, cancel := signalContext()
	defer cancel()

	return tui.Run(ctx, tui.Options{
		Game:     game,
		Config:   cfg,
		Audio:    player,
		Scores:   storage.NewLeaderboard(store, gameID, localPlayer(), logger.WithPrefix("scores")),
		Logger:   logger,
		Substeps: flagSubsteps,
		Stats:    flagStats,
	})
}

// localPlayer names runs played in the local terminal.
func localPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}

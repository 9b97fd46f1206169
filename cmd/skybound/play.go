package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skybound/internal/config"
	"github.com/vovakirdan/skybound/internal/core"
	"github.com/vovakirdan/skybound/internal/logging"
	"github.com/vovakirdan/skybound/internal/platform/tui"
	"github.com/vovakirdan/skybound/internal/storage"
)

var (
	flagDifficulty string
	flagSeed       int64
	flagName       string
	flagAskName    bool
	flagFPS        int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Skybound",
	Long: `Start a game in this terminal.

Controls:
  Space/Up/W - Flap (the first flap starts the run)
  P          - Pause
  R          - Fly again (after game over)
  Tab        - Switch between game and leaderboard
  Q/Ctrl+C   - Quit

Leaderboard view:
  R - Refresh   W - Winner   X - Reset   N - Change name

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  skybound play
  skybound play --difficulty hard
  skybound play --name Ann
  skybound play --offline`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name (skips the prompt)")
	playCmd.Flags().BoolVar(&flagAskName, "ask-name", false, "Always ask for the player name")
	playCmd.Flags().IntVar(&flagFPS, "fps", 0, "Tick rate override (frames per second)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return err
		}
		cfg.Game.ApplyPreset(preset)
	}
	if flagFPS > 0 {
		cfg.Game.FPS = flagFPS
	}

	// The game owns the terminal, so logs go to a file.
	var logOut io.Writer = io.Discard
	if cfg.Log.File != "" {
		f, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else {
			defer f.Close()
			logOut = f
		}
	}

	dev, err := openDevice(cfg, logOut)
	if err != nil {
		return err
	}
	defer dev.Close()

	width, height := core.DefaultScreenW, core.DefaultScreenH
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	dev.logger.Info("session started", "offline", cfg.Leaderboard.Offline())
	err = tui.Run(ctx, tui.Options{
		Leaderboard: dev.service,
		Names:       storage.NewPrefs(dev.kv),
		Runs:        dev.kv,
		Game:        cfg.Game,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: cfg.Game.FPS,
			Seed:     flagSeed,
		},
		PlayerName: flagName,
		AskName:    flagAskName,
		Bell:       os.Stdout,
		Logger:     dev.logger,
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/waterrun/internal/audio"
	"github.com/vovakirdan/waterrun/internal/core"
	"github.com/vovakirdan/waterrun/internal/platform/tui"
	"github.com/vovakirdan/waterrun/internal/session"
	"github.com/vovakirdan/waterrun/internal/storage"
)

var (
	flagMute   bool
	flagVolume float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Open the start screen, pick a difficulty, and run.

Controls:
  1/2/3, Up/Down  - Pick a difficulty
  Enter           - Start
  Space/Up/W      - Jump
  Enter/D/click   - Deliver water to the lit door
  R               - Run again (after game over)
  Tab             - Run board (Enter: details, X: clear)
  M               - Mute or unmute
  Esc             - Back to the start screen
  Q/Ctrl+C        - Quit

The run board keeps the runs of this session only.

Examples:
  waterrun play
  waterrun play --mute
  waterrun play --seed 42 --log-file waterrun.log --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound muted (M toggles it in game)")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Sound volume from 0 to 1")
}

func runPlay(_ *cobra.Command, _ []string) error {
	// Bubble Tea owns the terminal, so logs only go to --log-file.
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	rt := core.DefaultRuntime()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW, rt.ScreenH = w, h
	}

	var sink session.AudioSink = session.NopAudio{}
	sm := audio.NewSoundManager(flagVolume, logger)
	if err := sm.Initialize(); err != nil {
		logger.Warn("audio device unavailable", "err", err)
	} else {
		defer sm.Cleanup()
		sm.SetMuted(flagMute)
		sink = sm
	}

	board, err := storage.Open()
	if err != nil {
		logger.Warn("run board unavailable", "err", err)
		board = nil
	} else {
		defer board.Close()
	}

	logger.Info("starting", "width", rt.ScreenW, "height", rt.ScreenH, "seed", flagSeed)
	return tui.Run(tui.Options{
		Config:     cfg,
		Board:      board,
		ClearBoard: true,
		Audio:      sink,
		Logger:     logger,
		Seed:       flagSeed,
		Width:      rt.ScreenW,
		Height:     rt.ScreenH,
	})
}

package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play in the terminal",
	Long: `Start playing in the terminal. Without a mode a menu lets you pick one.

The board shrinks to fit the terminal; each cell is two characters wide.

Controls:
  Arrows/WASD/hjkl - Steer
  R                - Skip the wait after game over
  Esc/B            - Back to the menu
  ?                - Toggle help
  Ctrl+S           - Save a screenshot to ~/.snake/screenshots
  Q/Ctrl+C         - Quit

Examples:
  snake play
  snake play classic
  snake play ramp --speed hard
  snake play --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	e := setup(true)
	defer e.Close()

	runtime := core.DefaultConfig()
	runtime.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}

	store := e.openStore()
	if store != nil {
		defer store.Close()
	}

	mode := modeArg(args)
	opts := tui.Options{
		Session: e.sessionConfig(mode, runtime.Seed),
		Store:   store,
		Logger:  e.logger,
	}
	e.logger.Info("starting terminal game", "mode", mode.ID, "board", e.board)

	var err error
	if len(args) == 0 {
		err = tui.RunApp(opts, runtime.ScreenW, runtime.ScreenH)
	} else {
		err = tui.Run(opts)
	}
	if err != nil {
		if store != nil {
			store.Close()
		}
		fatal("Error running game: %v", err)
	}
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/window"
)

var flagScale int

var windowCmd = &cobra.Command{
	Use:   "window [mode]",
	Short: "Play in a desktop window",
	Long: `Open a desktop window and play at board scale: one board unit is one
pixel times --scale.

Controls:
  Arrows/WASD - Steer
  R           - Skip the wait after game over
  Esc/Q       - Quit

Examples:
  snake window
  snake window ramp --scale 2`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagScale, "scale", 1, "Window pixels per board unit")
}

func runWindow(cmd *cobra.Command, args []string) {
	e := setup(false)
	defer e.Close()

	store := e.openStore()
	if store != nil {
		defer store.Close()
	}

	mode := modeArg(args)
	e.logger.Info("opening window", "mode", mode.ID, "board", e.board)

	err := window.Run(window.Options{
		Session: e.sessionConfig(mode, flagSeed),
		Store:   store,
		Logger:  e.logger,
		Scale:   flagScale,
	})
	if err != nil {
		if store != nil {
			store.Close()
		}
		fatal("Error running window: %v", err)
	}
}

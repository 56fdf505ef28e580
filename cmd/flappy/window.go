package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/desktop"
)

var (
	windowFlags pilotFlags
	flagScale   float64
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open the game in a desktop window. The window is the world size
times --scale.

Controls:
  Space/Up/W/Click  - Flap
  P/Esc             - Pause
  R                 - Restart
  Q                 - Quit

Examples:
  flappy window
  flappy window --scale 1.5 --record`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func init() {
	windowFlags.register(windowCmd, "human")
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window pixels per world unit")
}

func runWindow(cmd *cobra.Command, args []string) {
	s, err := newSession(windowFlags, os.Stderr)
	if err != nil {
		fatal("%v", err)
	}

	err = desktop.Run(s.driver, desktop.Options{
		Scale:  flagScale,
		Logger: s.logger,
	})
	s.finish()
	if err != nil {
		fatal("%v", err)
	}
}

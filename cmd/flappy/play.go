package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var playFlags pilotFlags

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal.

Controls:
  Space/Up/W  - Flap
  P/Esc       - Pause
  R           - Restart
  Ctrl+S      - Save a screenshot to ~/.flappy/screenshots
  Ctrl+Y      - Copy the screen to the clipboard
  ?           - Show all keys
  Q/Ctrl+C    - Quit

Logs are discarded unless --log-file is set, so they do not
disturb the game screen.

Examples:
  flappy play
  flappy play --seed 42 --record
  flappy play --pilot bot
  flappy play --config ./my-flappy.toml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playFlags.register(playCmd, "human")
}

func runPlay(cmd *cobra.Command, args []string) {
	s, err := newSession(playFlags, io.Discard)
	if err != nil {
		fatal("%v", err)
	}

	// Get terminal size for the first frame
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	err = tui.Run(s.driver, tui.Options{
		Width:  width,
		Height: height,
		Logger: s.logger,
	})
	s.finish()
	if err != nil {
		fatal("%v", err)
	}
}

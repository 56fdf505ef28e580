// flappy is a Flappy Bird-style game with a terminal and a desktop frontend,
// scripted pilots and a replayable run journal.
//
// Usage:
//
//	flappy play              - Play in the terminal
//	flappy window            - Play in a desktop window
//	flappy sim               - Run a headless simulation with a pilot
//	flappy runs              - Browse recorded runs
//	flappy replay <id>       - Re-simulate a recorded run and verify it
//	flappy config            - Print the effective configuration
//	flappy pilots            - List available pilots
//
// Global flags:
//
//	--fps <rate>         - Override the tick rate from the config
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--config <path>      - Load a YAML or TOML config file
//	--db <path>          - Set run journal path (default: ~/.flappy/runs.db)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import pilots to register them
	_ "github.com/vovakirdan/tui-flappy/internal/pilot"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - fly between the pipes in your terminal or a window",
	Long: `Flappy is a Flappy Bird-style game. A body falls under gravity,
each flap sends it upward, and pairs of obstacles scroll toward it.
Pass a pair to score; touch one or the ground and the game is over.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  sim      - Run headless with a pilot
  runs     - Browse recorded runs
  replay   - Re-simulate a recorded run
  config   - Print the effective configuration
  pilots   - List available pilots

Examples:
  flappy play
  flappy play --pilot bot --record
  flappy window --scale 1.5
  flappy sim --pilot lua --script scripts/hover.lua --ticks 10000
  flappy replay 3`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = runtime.tick_rate from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML or TOML config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to the run journal")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(pilotsCmd)
}

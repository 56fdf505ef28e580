package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a game would use, as YAML, after applying
the search order: --config, ~/.flappy/configs/flappy.{yaml,toml},
./configs/flappy.{yaml,toml}, then the built-in defaults.

Examples:
  flappy config > ~/.flappy/configs/flappy.yaml
  flappy config --config ./hard.toml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) {
	logger, logFile, err := newLogger(io.Discard)
	if err != nil {
		fatal("%v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, source, err := config.LoadFlappy(flagConfig)
	if err != nil {
		fatal("%v", err)
	}
	if flagFPS > 0 {
		cfg.Runtime.TickRate = flagFPS
	}
	logger.Debug("config loaded", "source", source)

	data, err := cfg.YAML()
	if err != nil {
		fatal("%v", err)
	}

	fmt.Fprintf(os.Stdout, "# source: %s\n", source)
	os.Stdout.Write(data)
}

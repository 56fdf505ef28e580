package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/sim"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a recorded run and verify it",
	Long: `Load a run from the journal, re-run it from its seed, configuration
and command stream, and check that it ends with the recorded score.

Examples:
  flappy replay 3`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		fatal("invalid run id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening run journal: %v", err)
	}
	defer store.Close()

	replayRun(store, id)
}

func replayRun(store *storage.Store, id int64) {
	rec, err := store.LoadRun(id)
	if err != nil {
		fatal("%v", err)
	}

	fmt.Printf("Run #%d: seed %d, pilot %s, %d ticks, %d commands\n",
		id, rec.Seed, rec.Pilot, rec.Frames, len(rec.Events))

	snap, err := sim.Verify(rec)
	switch {
	case errors.Is(err, sim.ErrReplayMismatch):
		fmt.Fprintf(os.Stderr, "MISMATCH: %v\n", err)
		os.Exit(2)
	case err != nil:
		fatal("%v", err)
	}

	fmt.Printf("OK: score %d, best %d, %s\n", snap.Score, snap.Best, snap.Mode)
}

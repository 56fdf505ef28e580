package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagRunsLimit  int
	flagRunsPlain  bool
	flagRunsDelete int64
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse recorded runs",
	Long: `List the runs saved with --record. In a terminal this opens an
interactive browser; pick a run with Enter to replay it or press D to
delete it. Output that is not a terminal, or --plain, gets a plain listing.

Examples:
  flappy runs
  flappy runs --plain --limit 5
  flappy runs --delete 3`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs in the plain listing")
	runsCmd.Flags().BoolVar(&flagRunsPlain, "plain", false, "Print a plain listing")
	runsCmd.Flags().Int64Var(&flagRunsDelete, "delete", 0, "Delete the run with this ID")
}

func runRuns(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening run journal: %v", err)
	}
	defer store.Close()

	if flagRunsDelete != 0 {
		if err := store.DeleteRun(flagRunsDelete); err != nil {
			fatal("%v", err)
		}
		fmt.Printf("Deleted run #%d\n", flagRunsDelete)
		return
	}

	fd := int(os.Stdout.Fd())
	if flagRunsPlain || !term.IsTerminal(fd) {
		printRuns(store)
		return
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(fd); termErr == nil {
		width, height = w, h
	}

	id, err := tui.BrowseRuns(store, width, height)
	if err != nil {
		fatal("%v", err)
	}
	if id != 0 {
		replayRun(store, id)
	}
}

func printRuns(store *storage.Store) {
	runs, err := store.Runs(flagRunsLimit)
	if err != nil {
		fatal("retrieving runs: %v", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println("Play with --record to keep one.")
		return
	}

	fmt.Printf("  %-6s %-8s %6s %6s %8s %9s  %s\n", "ID", "Pilot", "Best", "Score", "Ticks", "Commands", "Date")
	fmt.Printf("  %-6s %-8s %6s %6s %8s %9s  %s\n", "--", "-----", "----", "-----", "-----", "--------", "----")
	for _, r := range runs {
		fmt.Printf("  %-6d %-8s %6d %6d %8d %9d  %s\n",
			r.ID, r.Pilot, r.Best, r.Score, r.Frames, r.Commands, r.StartedAt.Local().Format("Jan 02 15:04"))
	}

	if st, err := store.Stats(); err == nil {
		fmt.Println()
		fmt.Printf("  %d runs, best %d, average best %.1f\n", st.Runs, st.Best, st.AvgBest)
	}
}

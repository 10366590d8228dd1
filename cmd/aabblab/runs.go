package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/aabb-lab/internal/platform/tui"
	"github.com/vovakirdan/aabb-lab/internal/storage"
)

var (
	flagRunsPlain  bool
	flagRunsLimit  int
	flagRunsDelete bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [id]",
	Short: "Browse recorded simulation runs",
	Long: `Browse runs recorded with 'aabblab simulate --record'.

Without arguments an interactive table lists the runs; Enter shows the
frames of a run and X deletes it. With --plain the list is printed instead.
Given a run id, its frames are printed (or the run is removed with --delete).

Examples:
  aabblab runs
  aabblab runs --plain --limit 5
  aabblab runs 12
  aabblab runs 12 --delete`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagRunsPlain, "plain", false, "Print the run list instead of opening the browser")
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to print with --plain")
	runsCmd.Flags().BoolVar(&flagRunsDelete, "delete", false, "Delete the given run")
}

func runRuns(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening database: %v", err)
	}
	err = showRuns(store, args)
	store.Close()
	if err != nil {
		fail("%v", err)
	}
}

func showRuns(store *storage.Store, args []string) error {
	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q", args[0])
		}
		if flagRunsDelete {
			if err := store.DeleteRun(id); err != nil {
				return err
			}
			fmt.Printf("Deleted run %d\n", id)
			return nil
		}
		frames, err := store.RunFrames(id)
		if err != nil {
			return err
		}
		printFrames(frames)
		return nil
	}

	if !flagRunsPlain {
		cfg := terminalConfig()
		_, err := tui.RunRuns(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	runs, err := store.Runs(flagRunsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-5s  %-12s  %-6s  %-6s  %-5s  %-4s  %-16s  %s\n",
		"ID", "Demo", "Ticks", "Score", "Coins", "Won", "Date", "Script")
	for _, r := range runs {
		won := ""
		if r.Won {
			won = "yes"
		}
		fmt.Printf("  %-5d  %-12s  %-6d  %-6d  %-5d  %-4s  %-16s  %s\n",
			r.ID, r.GameID, r.Ticks, r.Score, r.Coins, won, r.CreatedAt.Format("2006-01-02 15:04"), r.Script)
	}
	return nil
}

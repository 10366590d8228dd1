package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/aabb-lab/internal/registry"
	"github.com/vovakirdan/aabb-lab/internal/sim"
	"github.com/vovakirdan/aabb-lab/internal/storage"
)

var (
	flagTicks      int
	flagScript     string
	flagRecord     bool
	flagStopOnOver bool
	flagShowFrames bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <demo>",
	Short: "Run a demo headless with scripted input",
	Long: `Run a demo without a terminal UI, feeding it a repeating input script.

A script is a list of action[*count] tokens. Actions are left, right, up,
down, jump and wait; join actions with '+' to hold them together.

Examples:
  aabblab simulate platformer --ticks 300 --script "right*60 right+jump*4 wait*20"
  aabblab simulate caverns --script "right*120" --record
  aabblab simulate corridors --script "right*30 down*30" --frames -v`,
	Args: cobra.ExactArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 600, "Number of ticks to run (0 = one pass of the script)")
	simulateCmd.Flags().StringVar(&flagScript, "script", "", "Input script, repeated until the run ends")
	simulateCmd.Flags().BoolVar(&flagRecord, "record", false, "Store the run and its frames in the database")
	simulateCmd.Flags().BoolVar(&flagStopOnOver, "stop-on-over", true, "Stop as soon as the demo is over")
	simulateCmd.Flags().BoolVar(&flagShowFrames, "frames", false, "Print every recorded frame")
}

func runSimulate(_ *cobra.Command, args []string) {
	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown demo %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'aabblab list' to see available demos.")
		os.Exit(1)
	}

	script, err := sim.ParseScript(flagScript)
	if err != nil {
		fail("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger("sim")
	res, err := sim.Run(ctx, sim.Options{
		Demo:           gameID,
		Ticks:          flagTicks,
		Script:         script,
		Config:         runtimeConfig(0, 0),
		StopOnGameOver: flagStopOnOver,
		Logger:         logger,
	})
	stop()
	if err != nil && !errors.Is(err, context.Canceled) {
		fail("%v", err)
	}
	if res == nil {
		return
	}

	if flagShowFrames {
		printFrames(res.Frames)
		fmt.Println()
	}

	final := res.Final
	fmt.Printf("Demo:     %s\n", res.Demo)
	fmt.Printf("Ticks:    %d\n", len(res.Frames))
	fmt.Printf("Position: (%.4f, %.4f)\n", final.X, final.Y)
	fmt.Printf("Grounded: %v\n", final.Grounded)
	fmt.Printf("Coins:    %d\n", final.Coins)
	fmt.Printf("Score:    %d\n", final.Score)
	switch {
	case final.Won:
		fmt.Println("Result:   won")
	case final.GameOver:
		fmt.Println("Result:   game over")
	}

	if !flagRecord {
		return
	}
	id, err := recordRun(res, logger)
	if err != nil {
		fail("%v", err)
	}
	logger.Info("run recorded", "id", id, "frames", len(res.Frames))
	fmt.Printf("Recorded: run %d\n", id)
}

// recordRun stores the run, its frames and a positive score. The database is
// closed before returning.
func recordRun(res *sim.Result, logger *log.Logger) (int64, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	id, err := store.SaveRun(res.Record(), res.Frames)
	if err != nil {
		return 0, err
	}
	if res.Final.Score > 0 {
		if _, err := store.SaveScore(res.Demo, res.Final.Score); err != nil {
			logger.Warn("could not save score", "error", err)
		}
	}
	return id, nil
}

func printFrames(frames []storage.Frame) {
	fmt.Printf("  %-6s  %-12s  %9s  %9s  %8s  %8s  %-6s  %s\n",
		"Tick", "Input", "X", "Y", "VX", "VY", "Ground", "Hits")
	for _, f := range frames {
		ground := ""
		if f.Grounded {
			ground = "yes"
		}
		fmt.Printf("  %-6d  %-12s  %9.4f  %9.4f  %8.4f  %8.4f  %-6s  %d\n",
			f.Tick, f.Input, f.X, f.Y, f.VX, f.VY, ground, f.Contacts)
	}
}

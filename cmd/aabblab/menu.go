package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/aabb-lab/internal/platform/tui"
	"github.com/vovakirdan/aabb-lab/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a demo picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a demo.
Leaving a paused or finished demo with Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play demo
  Tab          - High scores
  O            - Recorded runs
  Q            - Quit

Examples:
  aabblab menu
  aabblab menu --fps 30 --preset floaty`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	checkFlags()

	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		switch {
		case menuResult.Quit:
			return

		case menuResult.WantsScoreboard:
			goBack, sbErr := tui.RunScoreboard(store, "", cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if !goBack {
				return
			}

		case menuResult.WantsRuns:
			goBack, runsErr := tui.RunRuns(store, cfg.ScreenW, cfg.ScreenH)
			if runsErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", runsErr)
			}
			if !goBack {
				return
			}

		default:
			game, err := registry.Create(menuResult.GameID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating demo: %v\n", err)
				continue
			}
			goBack, err := tui.Run(game, store, cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error running demo: %v\n", err)
				continue
			}
			if !goBack {
				return
			}
		}
	}
}

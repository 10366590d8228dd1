package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/aabb-lab/internal/config"
	"github.com/vovakirdan/aabb-lab/internal/core"
	"github.com/vovakirdan/aabb-lab/internal/platform/tui"
	"github.com/vovakirdan/aabb-lab/internal/registry"
	"github.com/vovakirdan/aabb-lab/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <demo>",
	Short: "Play a demo",
	Long: `Start playing the specified demo.

Controls:
  Left/Right, A/D  - Move
  Up/Down, W/S     - Move (top-down demos)
  Space/Z          - Jump
  V                - Toggle ray and contact overlay
  P                - Pause
  R                - Restart (after game over)
  Esc/B            - Back (when paused or over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Examples:
  aabblab play platformer
  aabblab play caverns --preset heavy
  aabblab play platformer --scene ./my-level.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

// terminalConfig sizes the runtime config to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 0, 0
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return runtimeConfig(width, height)
}

// checkFlags validates the scene related global flags before any UI starts.
func checkFlags() {
	if _, err := config.ParsePreset(flagPreset); err != nil {
		fail("%v", err)
	}
	if flagScene != "" {
		if _, err := config.LoadFile(flagScene); err != nil {
			fail("%v", err)
		}
	}
}

// openStore opens the database, continuing without it on failure.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown demo %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'aabblab list' to see available demos.")
		os.Exit(1)
	}
	checkFlags()

	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating demo: %v", err)
	}

	store := openStore()
	_, runErr := tui.Run(game, store, terminalConfig())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running demo: %v", runErr)
	}
}

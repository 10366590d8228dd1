// aabblab is a terminal playground for a swept AABB collision engine.
//
// Usage:
//
//	aabblab list                  - List available demos
//	aabblab play <demo>           - Play a demo
//	aabblab menu                  - Pick demos interactively
//	aabblab simulate <demo>       - Run a demo headless with scripted input
//	aabblab runs                  - Browse recorded runs
//	aabblab scores <demo>         - Show high scores for a demo
//	aabblab scene [id]            - Print a scene as YAML
//	aabblab serve                 - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--db <path>       - Set database path (default: ~/.aabblab/aabblab.db)
//	--scene <path>    - Load the scene from a YAML file
//	--preset <name>   - Physics preset: floaty, normal, heavy
//	--verbose         - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/aabb-lab/internal/core"
	// Import demos to register them
	_ "github.com/vovakirdan/aabb-lab/internal/games/platformer"
)

var (
	// Global flags
	flagFPS     int
	flagDBPath  string
	flagScene   string
	flagPreset  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "aabblab",
	Short: "AABB Lab - swept collision demos in your terminal",
	Long: `AABB Lab drives a swept axis-aligned bounding box collision engine
with small terminal demos: walk, jump and slide along tile maps while the
engine resolves every contact.

Available commands:
  list      - Show all available demos
  play      - Play a specific demo directly
  menu      - Interactive demo picker menu
  simulate  - Run a demo headless with scripted input
  runs      - Browse recorded simulation runs
  scores    - View high scores
  scene     - Print a scene as YAML
  serve     - Start SSH server for remote play

Examples:
  aabblab list
  aabblab play platformer
  aabblab play caverns --preset floaty
  aabblab simulate platformer --ticks 600 --script "right*40 right+jump*5" --record
  aabblab serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.aabblab/aabblab.db", "Path to the scores and runs database")
	rootCmd.PersistentFlags().StringVar(&flagScene, "scene", "", "Path to a custom scene YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Physics preset: floaty, normal, heavy")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(sceneCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the CLI logger honoring --verbose.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// runtimeConfig builds the runtime config from the global flags.
func runtimeConfig(width, height int) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if width > 0 && height > 0 {
		cfg.ScreenW = width
		cfg.ScreenH = height
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Scene = flagScene
	cfg.Preset = flagPreset
	return cfg
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

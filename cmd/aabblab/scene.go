package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/aabb-lab/internal/config"
)

var sceneCmd = &cobra.Command{
	Use:   "scene [id]",
	Short: "Print a scene as YAML",
	Long: `Print the scene a demo would load, after defaults and the physics
preset are applied. Without an id the built-in scenes are listed.

The output is a valid scene file: save it to ~/.aabblab/scenes/<id>.yaml
or ./scenes/<id>.yaml to override the built-in scene.

Examples:
  aabblab scene
  aabblab scene caverns > scenes/caverns.yaml
  aabblab scene platformer --preset heavy`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScene,
}

func runScene(_ *cobra.Command, args []string) {
	if len(args) == 0 {
		fmt.Println("Built-in scenes:")
		for _, id := range config.BuiltinScenes() {
			fmt.Printf("  %s\n", id)
		}
		return
	}

	cfg, err := config.Load(args[0], flagScene)
	if err != nil {
		fail("%v", err)
	}
	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		fail("%v", err)
	}
	config.ApplyPreset(&cfg, preset)

	data, err := config.Marshal(cfg)
	if err != nil {
		fail("%v", err)
	}
	//nolint:errcheck // Nothing to do if stdout is gone
	os.Stdout.Write(data)
}

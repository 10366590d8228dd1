package config

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed defaults/*.yaml
var defaultScenes embed.FS

// DefaultScene returns the built-in platformer scene, used when even the
// embedded files cannot be read.
func DefaultScene() SceneConfig {
	return SceneConfig{
		ID:   "platformer",
		Name: "Platformer",
		Mode: ModePlatformer,
		Physics: PhysicsConfig{
			Gravity:      0.02,
			MaxFallSpeed: 0.9,
			MoveSpeed:    0.35,
			JumpStrength: 0.55,
		},
		Player: Size{Width: 2.5, Height: 1.5},
		Tile:   Size{Width: 4, Height: 2},
		Map: []string{
			"#.####..#.######",
			"#..##.......####",
			"#.####.........#",
			"#..........###o#",
			"###...o........#",
			"#....P..o......#",
			"##..#####.####.#",
			"###.##########.#",
			"################",
		},
		Rays: []RayConfig{
			{Name: GroundRay, Direction: Vector{Y: 0.3}, Offset: Vector{Y: 0.75}},
		},
	}
}

// DefaultYAML returns the embedded YAML for a built-in scene, or nil.
func DefaultYAML(id string) []byte {
	data, err := defaultScenes.ReadFile(path.Join("defaults", id+".yaml"))
	if err != nil {
		return nil
	}
	return data
}

// BuiltinScenes returns the ids of the embedded scenes in sorted order.
func BuiltinScenes() []string {
	entries, err := fs.ReadDir(defaultScenes, "defaults")
	if err != nil {
		return nil
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			ids = append(ids, name)
		}
	}
	sort.Strings(ids)
	return ids
}

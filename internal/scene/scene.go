// Package scene turns a scene configuration into a populated collision world:
// solid map tiles become static bodies, the spawn point becomes the player's
// kinematic body, and the configured sensing rays are anchored to it.
package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/aabb-lab/internal/collision"
	"github.com/vovakirdan/aabb-lab/internal/config"
)

// Tile is a solid map cell backed by a static body.
type Tile struct {
	ID  collision.StaticID
	Col int
	Row int
}

// Coin is a pickup. Coins are sensors, not bodies: they never block motion.
type Coin struct {
	Box       collision.BoundingBox
	Collected bool
}

// Ray is a named sensing ray attached to the player.
type Ray struct {
	Name string
	ID   collision.RayID
}

// Scene is a built scene ready to be stepped.
type Scene struct {
	Config config.SceneConfig
	World  *collision.World
	Player collision.KinematicID
	Spawn  mgl64.Vec2
	Tiles  []Tile
	Coins  []Coin
	Rays   []Ray

	solid [][]bool
}

// Build validates cfg and creates its collision world.
func Build(cfg config.SceneConfig) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Scene{
		Config: cfg,
		World: collision.NewWorld(
			collision.WithWorkers(cfg.Solver.Workers),
			collision.WithTimeTolerance(cfg.Solver.TimeTolerance),
		),
		solid: make([][]bool, cfg.Rows()),
	}

	tileShape := collision.NewRectangle(cfg.Tile.Width, cfg.Tile.Height)
	coinSize := mgl64.Vec2{
		math.Min(1, cfg.Tile.Width/2),
		math.Min(1, cfg.Tile.Height/2),
	}

	spawnFound := false
	firstEmpty, emptyFound := mgl64.Vec2{}, false

	for row, line := range cfg.Map {
		s.solid[row] = make([]bool, cfg.Columns())
		for col, r := range []rune(line) {
			center := s.TileCenter(col, row)
			switch r {
			case config.TileSolid:
				id := s.World.AddStatic(tileShape, center)
				s.Tiles = append(s.Tiles, Tile{ID: id, Col: col, Row: row})
				s.solid[row][col] = true
				continue
			case config.TileSpawn:
				if !spawnFound {
					s.Spawn, spawnFound = center, true
				}
			case config.TileCoin:
				s.Coins = append(s.Coins, Coin{Box: collision.NewBoundingBox(coinSize.Mul(0.5), center)})
			}
			if !emptyFound {
				firstEmpty, emptyFound = center, true
			}
		}
	}

	if !spawnFound {
		if !emptyFound {
			return nil, fmt.Errorf("scene: %q: %w: no free cell for the player", cfg.ID, config.ErrInvalidScene)
		}
		s.Spawn = firstEmpty
	}

	s.Player = s.World.AddKinematic(collision.NewRectangle(cfg.Player.Width, cfg.Player.Height), s.Spawn)
	for _, rc := range cfg.Rays {
		id := s.World.AddRay(collision.Raycast{
			Anchor:    s.Player,
			Direction: rc.Direction.Vec2(),
			Offset:    rc.Offset.Vec2(),
		})
		s.Rays = append(s.Rays, Ray{Name: rc.Name, ID: id})
	}
	return s, nil
}

// Size returns the world size in cells.
func (s *Scene) Size() mgl64.Vec2 {
	return mgl64.Vec2{
		float64(s.Config.Columns()) * s.Config.Tile.Width,
		float64(s.Config.Rows()) * s.Config.Tile.Height,
	}
}

// TileCenter returns the world position of a map cell's center.
func (s *Scene) TileCenter(col, row int) mgl64.Vec2 {
	tw, th := s.Config.Tile.Width, s.Config.Tile.Height
	return mgl64.Vec2{float64(col)*tw + tw/2, float64(row)*th + th/2}
}

// TileAt returns the map cell containing a world position.
func (s *Scene) TileAt(p mgl64.Vec2) (col, row int) {
	return int(math.Floor(p.X() / s.Config.Tile.Width)), int(math.Floor(p.Y() / s.Config.Tile.Height))
}

// Solid reports whether a map cell is a wall. Cells outside the map are open.
func (s *Scene) Solid(col, row int) bool {
	if row < 0 || row >= len(s.solid) || col < 0 || col >= len(s.solid[row]) {
		return false
	}
	return s.solid[row][col]
}

// Ray returns the ray with the given name.
func (s *Scene) Ray(name string) (collision.RayID, bool) {
	for _, r := range s.Rays {
		if r.Name == name {
			return r.ID, true
		}
	}
	return 0, false
}

// CollectCoins marks every uncollected coin overlapping box as collected and
// returns how many were picked up.
func (s *Scene) CollectCoins(box collision.BoundingBox) int {
	n := 0
	for i := range s.Coins {
		c := &s.Coins[i]
		if !c.Collected && c.Box.Overlaps(box) {
			c.Collected = true
			n++
		}
	}
	return n
}

// CoinsLeft returns the number of uncollected coins.
func (s *Scene) CoinsLeft() int {
	n := 0
	for _, c := range s.Coins {
		if !c.Collected {
			n++
		}
	}
	return n
}

// PlayerBox returns the player's current bounding box.
func (s *Scene) PlayerBox() collision.BoundingBox {
	box, _ := s.World.Box(s.Player)
	return box
}

// Penetrating returns the statics the player currently overlaps. A correct
// solver keeps this empty.
func (s *Scene) Penetrating() []collision.StaticID {
	return s.World.QueryBox(s.PlayerBox())
}

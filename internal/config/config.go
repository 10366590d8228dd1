// Package config provides YAML scene definitions for the collision demos:
// the tile map, physics tuning, sensing rays and solver options, plus the
// loader that resolves a scene by id.
package config

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrUnknownScene is returned when no source provides the requested scene.
	ErrUnknownScene = errors.New("unknown scene")
	// ErrInvalidScene is returned when a scene file fails validation.
	ErrInvalidScene = errors.New("invalid scene")
)

// Mode selects how a scene is played.
type Mode string

const (
	ModePlatformer Mode = "platformer" // Side view with gravity and jumping
	ModeTopDown    Mode = "topdown"    // Free movement on both axes, no gravity
)

// Map legend.
const (
	TileSolid = '#'
	TileEmpty = '.'
	TileSpace = ' '
	TileSpawn = 'P'
	TileCoin  = 'o'
)

// SceneConfig describes one playable scene.
type SceneConfig struct {
	ID      string        `yaml:"id"`
	Name    string        `yaml:"name"`
	Mode    Mode          `yaml:"mode"`
	Physics PhysicsConfig `yaml:"physics"`
	Player  Size          `yaml:"player"`
	Tile    Size          `yaml:"tile"`
	Map     []string      `yaml:"map"`
	Rays    []RayConfig   `yaml:"rays"`
	Solver  SolverConfig  `yaml:"solver"`
}

// PhysicsConfig holds per-tick movement tuning in cells.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`        // Added to vertical velocity each tick
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // Terminal vertical velocity
	MoveSpeed    float64 `yaml:"move_speed"`     // Velocity while a direction is held
	JumpStrength float64 `yaml:"jump_strength"`  // Upward velocity of a jump
	Friction     float64 `yaml:"friction"`       // Velocity kept per tick with no input (0..1)
}

// Size is a width and height in cells.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Vec2 converts the size to a vector.
func (s Size) Vec2() mgl64.Vec2 {
	return mgl64.Vec2{s.Width, s.Height}
}

// Vector is a 2D value in scene files.
type Vector struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Vec2 converts the vector.
func (v Vector) Vec2() mgl64.Vec2 {
	return mgl64.Vec2{v.X, v.Y}
}

// RayConfig describes a sensing ray attached to the player.
type RayConfig struct {
	Name      string `yaml:"name"`
	Direction Vector `yaml:"direction"`
	Offset    Vector `yaml:"offset"`
}

// SolverConfig maps onto collision world options.
type SolverConfig struct {
	Workers       int     `yaml:"workers"`
	TimeTolerance float64 `yaml:"time_tolerance"`
}

// GroundRay is the ray name a platformer uses to detect standing.
const GroundRay = "ground"

// Columns returns the map width in tiles.
func (c SceneConfig) Columns() int {
	if len(c.Map) == 0 {
		return 0
	}
	return utf8.RuneCountInString(c.Map[0])
}

// Rows returns the map height in tiles.
func (c SceneConfig) Rows() int {
	return len(c.Map)
}

// applyDefaults fills fields a scene file may leave out.
func (c *SceneConfig) applyDefaults() {
	if c.Mode == "" {
		c.Mode = ModePlatformer
	}
	if c.Name == "" {
		c.Name = c.ID
	}
	if c.Tile == (Size{}) {
		c.Tile = Size{Width: 4, Height: 2}
	}
	if c.Player == (Size{}) {
		c.Player = Size{Width: 2.5, Height: 1.5}
	}
}

// Validate checks the scene for structural problems.
// All returned errors wrap ErrInvalidScene.
func (c SceneConfig) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("config: scene %q: %w: %s", c.ID, ErrInvalidScene, fmt.Sprintf(format, args...))
	}

	if c.ID == "" {
		return invalid("missing id")
	}
	if c.Mode != ModePlatformer && c.Mode != ModeTopDown {
		return invalid("unknown mode %q", c.Mode)
	}
	if c.Tile.Width <= 0 || c.Tile.Height <= 0 {
		return invalid("tile size must be positive, got %gx%g", c.Tile.Width, c.Tile.Height)
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		return invalid("player size must be positive, got %gx%g", c.Player.Width, c.Player.Height)
	}
	if len(c.Map) == 0 {
		return invalid("empty map")
	}

	width := c.Columns()
	if width == 0 {
		return invalid("empty map row 0")
	}
	for y, row := range c.Map {
		if n := utf8.RuneCountInString(row); n != width {
			return invalid("row %d has %d tiles, want %d", y, n, width)
		}
		for x, r := range []rune(row) {
			switch r {
			case TileSolid, TileEmpty, TileSpace, TileSpawn, TileCoin:
			default:
				return invalid("unknown tile %q at column %d, row %d", r, x, y)
			}
		}
	}

	p := c.Physics
	if p.Gravity < 0 || p.MaxFallSpeed < 0 || p.MoveSpeed < 0 || p.JumpStrength < 0 {
		return invalid("physics values must not be negative")
	}
	if p.Friction < 0 || p.Friction > 1 {
		return invalid("friction must be within [0, 1], got %g", p.Friction)
	}
	if c.Solver.Workers < 0 || c.Solver.TimeTolerance < 0 {
		return invalid("solver values must not be negative")
	}
	for i, ray := range c.Rays {
		if ray.Direction == (Vector{}) {
			return invalid("ray %d (%s) has zero direction", i, ray.Name)
		}
	}
	return nil
}

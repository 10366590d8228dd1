// Package core holds the terminal-facing primitives shared by scenes, games
// and front ends: the cell screen, semantic colors, input frames and the
// camera that maps world units to cells. It has no Bubble Tea dependency so
// game logic stays pure and testable.
package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rect is a rectangle of screen cells.
type Rect struct {
	X, Y int // Top-left cell
	W, H int
}

// NewRect creates a cell rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether the cell (x, y) is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Camera maps world coordinates to screen cells. World units are cells, with
// y growing downwards like the terminal.
type Camera struct {
	Origin mgl64.Vec2 // World position shown in the top-left cell
	Width  int        // Viewport width in cells
	Height int        // Viewport height in cells
}

// NewCamera creates a camera with the given viewport size looking at the
// world origin.
func NewCamera(width, height int) Camera {
	return Camera{Width: width, Height: height}
}

// Follow centers the camera on target, keeping the viewport inside a world of
// the given size. Worlds smaller than the viewport are pinned to the top-left.
func (c *Camera) Follow(target mgl64.Vec2, worldW, worldH float64) {
	x := target.X() - float64(c.Width)/2
	y := target.Y() - float64(c.Height)/2
	c.Origin = mgl64.Vec2{
		ClampF(x, 0, math.Max(0, worldW-float64(c.Width))),
		ClampF(y, 0, math.Max(0, worldH-float64(c.Height))),
	}
}

// ToCell returns the cell containing a world point.
func (c Camera) ToCell(p mgl64.Vec2) (int, int) {
	return int(math.Floor(p.X() - c.Origin.X())), int(math.Floor(p.Y() - c.Origin.Y()))
}

// CellRect returns the cells covered by a world-space box given its corners.
// Boxes thinner than a cell still cover at least one cell.
func (c Camera) CellRect(lo, hi mgl64.Vec2) Rect {
	x0 := int(math.Round(lo.X() - c.Origin.X()))
	y0 := int(math.Round(lo.Y() - c.Origin.Y()))
	x1 := int(math.Round(hi.X() - c.Origin.X()))
	y1 := int(math.Round(hi.Y() - c.Origin.Y()))
	return NewRect(x0, y0, Max(1, x1-x0), Max(1, y1-y0))
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

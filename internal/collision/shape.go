// Package collision implements swept axis-aligned box collision for 2D bodies.
// It covers bounding boxes, ray and sweep tests, and the per-step
// broad/narrow/solve pipeline that moves kinematic bodies against static ones.
// The package knows nothing about rendering, input or timing: hosts feed it
// bodies and read back positions, contacts and ray hits.
package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rectangle is an axis-aligned box shape described by its half extents.
// The zero value is a degenerate point-sized rectangle.
type Rectangle struct {
	extents mgl64.Vec2
}

// NewRectangle creates a rectangle from its full width and height.
// Negative sizes are mirrored, so a rectangle never has negative extents.
func NewRectangle(width, height float64) Rectangle {
	return Rectangle{extents: mgl64.Vec2{math.Abs(width) / 2, math.Abs(height) / 2}}
}

// RectangleFromExtents creates a rectangle from half extents.
func RectangleFromExtents(extents mgl64.Vec2) Rectangle {
	return Rectangle{extents: absVec(extents)}
}

// Extents returns the half extents of the rectangle.
func (r Rectangle) Extents() mgl64.Vec2 {
	return r.extents
}

// Size returns the full width and height of the rectangle.
func (r Rectangle) Size() mgl64.Vec2 {
	return r.extents.Mul(2)
}

func absVec(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{math.Abs(v[0]), math.Abs(v[1])}
}

func mulVec(a, b mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{a[0] * b[0], a[1] * b[1]}
}

func maxVec(a, b mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{math.Max(a[0], b[0]), math.Max(a[1], b[1])}
}

package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BoundingBox is an axis-aligned box in world space: a center position and
// non-negative half extents. Boxes are cheap values recomputed every step.
type BoundingBox struct {
	position mgl64.Vec2
	extents  mgl64.Vec2
	min      mgl64.Vec2
	max      mgl64.Vec2
}

// NewBoundingBox creates a box centered at position. Negative extents are
// mirrored to keep the box well-formed.
func NewBoundingBox(extents, position mgl64.Vec2) BoundingBox {
	extents = absVec(extents)
	return BoundingBox{
		position: position,
		extents:  extents,
		min:      position.Sub(extents),
		max:      position.Add(extents),
	}
}

// FromRectangle places a rectangle shape at a world position.
func FromRectangle(shape Rectangle, position mgl64.Vec2) BoundingBox {
	return NewBoundingBox(shape.Extents(), position)
}

// FromRay returns the broad-phase box covering a ray segment starting at
// origin. Each extent is at least SlideEpsilon so an axis-parallel ray still
// overlaps the boxes it grazes into.
func FromRay(origin, direction mgl64.Vec2) BoundingBox {
	half := direction.Mul(0.5)
	extents := maxVec(absVec(half), mgl64.Vec2{SlideEpsilon, SlideEpsilon})
	return NewBoundingBox(extents, origin.Add(half))
}

// Position returns the center of the box.
func (b BoundingBox) Position() mgl64.Vec2 { return b.position }

// Extents returns the half extents of the box.
func (b BoundingBox) Extents() mgl64.Vec2 { return b.extents }

// Min returns the lower corner.
func (b BoundingBox) Min() mgl64.Vec2 { return b.min }

// Max returns the upper corner.
func (b BoundingBox) Max() mgl64.Vec2 { return b.max }

// Overlaps reports whether two boxes share interior area.
// Boxes touching edge to edge do not overlap.
func (b BoundingBox) Overlaps(other BoundingBox) bool {
	return b.min[0] < other.max[0] &&
		b.max[0] > other.min[0] &&
		b.min[1] < other.max[1] &&
		b.max[1] > other.min[1]
}

// ExpandedByMotion returns the box swept along motion, padded by half the
// absolute displacement and re-centered halfway. It is a superset of the
// true swept volume and is what the broad phase tests against.
func (b BoundingBox) ExpandedByMotion(motion mgl64.Vec2) BoundingBox {
	half := motion.Mul(0.5)
	return NewBoundingBox(b.extents.Add(absVec(half)), b.position.Add(half))
}

// MinkowskiDifference returns the box whose extents are the sum of both
// extents, positioned at the offset from other to b. Sweeping other into b is
// equivalent to casting a ray from the origin against the result.
func (b BoundingBox) MinkowskiDifference(other BoundingBox) BoundingBox {
	return NewBoundingBox(b.extents.Add(other.extents), b.position.Sub(other.position))
}

// Expand grows the extents by value. Components that would become negative
// are clamped to zero.
func (b BoundingBox) Expand(value mgl64.Vec2) BoundingBox {
	extents := maxVec(b.extents.Add(value), mgl64.Vec2{})
	return NewBoundingBox(extents, b.position)
}

// OverlapResolution returns the displacement that pushes b out of other along
// the axis needing the smaller correction. The other component is zero.
// Boxes that do not overlap still produce a vector; check Overlaps first.
func (b BoundingBox) OverlapResolution(other BoundingBox) mgl64.Vec2 {
	var overlap mgl64.Vec2
	for i := 0; i < 2; i++ {
		toMax := other.max[i] - b.min[i]
		toMin := other.min[i] - b.max[i]
		if math.Abs(toMax) < math.Abs(toMin) {
			overlap[i] = toMax
		} else {
			overlap[i] = toMin
		}
	}

	if math.Abs(overlap[1]) < math.Abs(overlap[0]) {
		overlap[0] = 0
	} else {
		overlap[1] = 0
	}
	return overlap
}

// SweepTest moves b by motion against a stationary other and reports the
// first time of impact as a fraction of motion. Zero motion never hits.
func (b BoundingBox) SweepTest(other BoundingBox, motion mgl64.Vec2) (Hit, bool) {
	if motion == (mgl64.Vec2{}) {
		return Hit{}, false
	}

	ray := Ray{Direction: motion}
	return ray.IntersectBox(other.MinkowskiDifference(b))
}

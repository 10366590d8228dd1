package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a segment from Origin to Origin+Direction.
type Ray struct {
	Origin    mgl64.Vec2
	Direction mgl64.Vec2
}

// Hit describes where a ray or sweep first touches a box.
//
// Time and FarTime are fractions of the tested displacement. Normal is the
// surface normal of the face that was hit: a unit vector along one axis, or
// zero when both axes are entered at the same instant (a corner hit).
type Hit struct {
	Time    float64
	FarTime float64
	Normal  mgl64.Vec2
}

// IntersectBox runs the slab test of the ray against box.
//
// A hit requires the entry time to be below 1 and the exit time to be above
// both 0 and the entry time. An axis with zero direction is parallel to its
// slab: the ray misses when its origin lies outside that slab, otherwise the
// axis spans all times and never decides the hit or the normal. An origin on
// the slab boundary counts as inside, so a ray running down a seam between two
// boxes hits both.
func (r Ray) IntersectBox(box BoundingBox) (Hit, bool) {
	if r.Direction == (mgl64.Vec2{}) {
		return Hit{}, false
	}

	var near, far, sign [2]float64
	for i := 0; i < 2; i++ {
		d := r.Direction[i]
		if d == 0 {
			if r.Origin[i] < box.min[i] || r.Origin[i] > box.max[i] {
				return Hit{}, false
			}
			near[i], far[i] = math.Inf(-1), math.Inf(1)
			continue
		}

		sign[i] = math.Copysign(1, d)
		near[i] = (box.position[i] - r.Origin[i] - sign[i]*box.extents[i]) / d
		far[i] = (box.position[i] - r.Origin[i] + sign[i]*box.extents[i]) / d
	}

	// Cross-axis check: entering one slab after leaving the other is a miss.
	if near[0] > far[1] || near[1] > far[0] {
		return Hit{}, false
	}

	tNear := math.Max(near[0], near[1])
	tFar := math.Min(far[0], far[1])
	if tNear >= 1 || tFar <= 0 || tFar <= tNear {
		return Hit{}, false
	}

	hit := Hit{Time: math.Max(tNear, 0), FarTime: tFar}
	switch {
	case near[0] > near[1]:
		hit.Normal[0] = -sign[0]
	case near[0] < near[1]:
		hit.Normal[1] = -sign[1]
	}
	return hit, true
}

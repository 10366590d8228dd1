package collision

import "github.com/go-gl/mathgl/mgl64"

// SlideEpsilon is the fraction of the remaining motion kept clear of a
// contact surface after a slide.
const SlideEpsilon = 1e-7

// DiagonalSolve selects the axis along which an obstacle is widened by the
// moving body's extents when a lone obstacle is hit exactly on its corner.
var DiagonalSolve = mgl64.Vec2{1, 0}

// SlideMotion cuts motion along the axis of normal so the body stops just
// short of a contact found at time. Motion along the other axis is kept,
// which is what makes bodies slide along surfaces. A zero normal leaves
// motion unchanged.
//
// Normal points against motion, so the added margin leaves the body
// |motion|*SlideEpsilon outside the face, never inside it.
func SlideMotion(motion, normal mgl64.Vec2, time float64) mgl64.Vec2 {
	return motion.Add(mulVec(absVec(motion), normal).Mul(1 - time + SlideEpsilon))
}

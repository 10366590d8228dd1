package collision

import (
	"github.com/go-gl/mathgl/mgl64"
)

// KinematicID identifies a kinematic body within a World.
type KinematicID int

// StaticID identifies a static body within a World.
type StaticID int

// RayID identifies a raycast within a World.
type RayID int

// NoBody anchors a raycast to a fixed world position instead of a body.
const NoBody KinematicID = -1

// Contact is a surface a kinematic body touched during the last step.
type Contact struct {
	Static StaticID
	Normal mgl64.Vec2
}

// RayHit is a static body intersected by a raycast.
type RayHit struct {
	Static StaticID
	Hit    Hit
}

// Raycast describes a ray that is re-evaluated after every step.
type Raycast struct {
	// Anchor is the body the ray follows, or NoBody.
	Anchor KinematicID
	// Position is the world anchor used when Anchor is NoBody.
	Position mgl64.Vec2
	// Direction is the full segment, not a unit vector.
	Direction mgl64.Vec2
	// Offset is added to the anchor to get the ray origin.
	Offset mgl64.Vec2
}

type kinematicBody struct {
	shape    Rectangle
	position mgl64.Vec2
	motion   mgl64.Vec2
	contacts []Contact
	alive    bool
}

type staticBody struct {
	shape    Rectangle
	position mgl64.Vec2
	alive    bool
}

func (s *staticBody) box() BoundingBox {
	return FromRectangle(s.shape, s.position)
}

type raycast struct {
	Raycast
	hits  []RayHit
	alive bool
}

// World owns every body and ray taking part in collision. IDs are indices
// into its tables; removed entries are tombstoned and never reused.
//
// A World is not safe for concurrent use. WithWorkers parallelizes work
// inside a single Step only.
type World struct {
	kinematics []kinematicBody
	statics    []staticBody
	rays       []raycast

	workers       int
	timeTolerance float64
	tick          uint64
}

// Option configures a World.
type Option func(*World)

// WithWorkers runs the narrow phase and solver for different bodies on up to
// n goroutines. Results are identical to a serial run. Values below 2 keep
// everything on the calling goroutine.
func WithWorkers(n int) Option {
	return func(w *World) {
		w.workers = n
	}
}

// WithTimeTolerance groups narrow-phase hits whose times differ by at most
// tol. Zero, the default, groups by exact time equality; negative values
// are ignored.
func WithTimeTolerance(tol float64) Option {
	return func(w *World) {
		if tol > 0 {
			w.timeTolerance = tol
		}
	}
}

// NewWorld creates an empty world.
func NewWorld(opts ...Option) *World {
	w := &World{workers: 1}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 {
	return w.tick
}

// AddKinematic adds a moving body with the given shape at position.
func (w *World) AddKinematic(shape Rectangle, position mgl64.Vec2) KinematicID {
	w.kinematics = append(w.kinematics, kinematicBody{shape: shape, position: position, alive: true})
	return KinematicID(len(w.kinematics) - 1)
}

// AddStatic adds an immovable obstacle with the given shape at position.
func (w *World) AddStatic(shape Rectangle, position mgl64.Vec2) StaticID {
	w.statics = append(w.statics, staticBody{shape: shape, position: position, alive: true})
	return StaticID(len(w.statics) - 1)
}

// AddRay adds a raycast. Its hits are filled in by the next step.
func (w *World) AddRay(r Raycast) RayID {
	w.rays = append(w.rays, raycast{Raycast: r, alive: true})
	return RayID(len(w.rays) - 1)
}

// RemoveKinematic removes a body. Rays anchored to it stop reporting hits.
func (w *World) RemoveKinematic(id KinematicID) bool {
	k := w.kinematic(id)
	if k == nil {
		return false
	}
	*k = kinematicBody{}
	return true
}

// RemoveStatic removes an obstacle. Pending events naming it are skipped.
func (w *World) RemoveStatic(id StaticID) bool {
	s := w.static(id)
	if s == nil {
		return false
	}
	*s = staticBody{}
	return true
}

// RemoveRay removes a raycast.
func (w *World) RemoveRay(id RayID) bool {
	r := w.ray(id)
	if r == nil {
		return false
	}
	*r = raycast{}
	return true
}

// Position returns the position of a kinematic body.
func (w *World) Position(id KinematicID) (mgl64.Vec2, bool) {
	k := w.kinematic(id)
	if k == nil {
		return mgl64.Vec2{}, false
	}
	return k.position, true
}

// SetPosition teleports a kinematic body. No collision is checked.
func (w *World) SetPosition(id KinematicID, position mgl64.Vec2) bool {
	k := w.kinematic(id)
	if k == nil {
		return false
	}
	k.position = position
	return true
}

// Motion returns the displacement requested for the next step, or after a
// step, the displacement actually applied.
func (w *World) Motion(id KinematicID) (mgl64.Vec2, bool) {
	k := w.kinematic(id)
	if k == nil {
		return mgl64.Vec2{}, false
	}
	return k.motion, true
}

// SetMotion sets the displacement the body wants to make during the next step.
func (w *World) SetMotion(id KinematicID, motion mgl64.Vec2) bool {
	k := w.kinematic(id)
	if k == nil {
		return false
	}
	k.motion = motion
	return true
}

// Box returns the current bounding box of a kinematic body.
func (w *World) Box(id KinematicID) (BoundingBox, bool) {
	k := w.kinematic(id)
	if k == nil {
		return BoundingBox{}, false
	}
	return FromRectangle(k.shape, k.position), true
}

// Contacts returns the contacts recorded for a body during the last step.
func (w *World) Contacts(id KinematicID) []Contact {
	k := w.kinematic(id)
	if k == nil || len(k.contacts) == 0 {
		return nil
	}
	out := make([]Contact, len(k.contacts))
	copy(out, k.contacts)
	return out
}

// StaticBox returns the bounding box of a static body.
func (w *World) StaticBox(id StaticID) (BoundingBox, bool) {
	s := w.static(id)
	if s == nil {
		return BoundingBox{}, false
	}
	return s.box(), true
}

// Statics returns the IDs of all live static bodies in insertion order.
func (w *World) Statics() []StaticID {
	ids := make([]StaticID, 0, len(w.statics))
	for i := range w.statics {
		if w.statics[i].alive {
			ids = append(ids, StaticID(i))
		}
	}
	return ids
}

// Kinematics returns the IDs of all live kinematic bodies in insertion order.
func (w *World) Kinematics() []KinematicID {
	ids := make([]KinematicID, 0, len(w.kinematics))
	for i := range w.kinematics {
		if w.kinematics[i].alive {
			ids = append(ids, KinematicID(i))
		}
	}
	return ids
}

// SetRayDirection changes the segment a raycast covers.
func (w *World) SetRayDirection(id RayID, direction mgl64.Vec2) bool {
	r := w.ray(id)
	if r == nil {
		return false
	}
	r.Direction = direction
	return true
}

// SetRayPosition moves the world anchor of a raycast that has no body anchor.
func (w *World) SetRayPosition(id RayID, position mgl64.Vec2) bool {
	r := w.ray(id)
	if r == nil {
		return false
	}
	r.Position = position
	return true
}

// Ray returns the description of a raycast.
func (w *World) Ray(id RayID) (Raycast, bool) {
	r := w.ray(id)
	if r == nil {
		return Raycast{}, false
	}
	return r.Raycast, true
}

// RayOrigin returns where the raycast currently starts. Rays anchored to a
// removed body have no origin.
func (w *World) RayOrigin(id RayID) (mgl64.Vec2, bool) {
	r := w.ray(id)
	if r == nil {
		return mgl64.Vec2{}, false
	}
	return w.rayOrigin(r)
}

// RayHits returns the hits recorded by the last step, in static ID order.
func (w *World) RayHits(id RayID) []RayHit {
	r := w.ray(id)
	if r == nil || len(r.hits) == 0 {
		return nil
	}
	out := make([]RayHit, len(r.hits))
	copy(out, r.hits)
	return out
}

// IsColliding reports whether the raycast hit anything during the last step.
func (w *World) IsColliding(id RayID) bool {
	r := w.ray(id)
	return r != nil && len(r.hits) > 0
}

func (w *World) kinematic(id KinematicID) *kinematicBody {
	if id < 0 || int(id) >= len(w.kinematics) || !w.kinematics[id].alive {
		return nil
	}
	return &w.kinematics[id]
}

func (w *World) static(id StaticID) *staticBody {
	if id < 0 || int(id) >= len(w.statics) || !w.statics[id].alive {
		return nil
	}
	return &w.statics[id]
}

func (w *World) ray(id RayID) *raycast {
	if id < 0 || int(id) >= len(w.rays) || !w.rays[id].alive {
		return nil
	}
	return &w.rays[id]
}

func (w *World) rayOrigin(r *raycast) (mgl64.Vec2, bool) {
	if r.Anchor == NoBody {
		return r.Position.Add(r.Offset), true
	}
	k := w.kinematic(r.Anchor)
	if k == nil {
		return mgl64.Vec2{}, false
	}
	return k.position.Add(r.Offset), true
}

package collision

import (
	"cmp"
	"math"
	"slices"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// BroadEvent lists the statics whose boxes overlap a body's swept box.
type BroadEvent struct {
	Body    KinematicID
	Statics []StaticID
}

// CollisionGroup holds statics first hit at the same time.
type CollisionGroup struct {
	Time    float64
	Statics []StaticID
}

// NarrowEvent is the time-ordered list of hit groups for one body.
type NarrowEvent struct {
	Body    KinematicID
	Groups  []CollisionGroup
	Skipped int
}

// MoveEvent is the resolved outcome of one body's step.
type MoveEvent struct {
	Body     KinematicID
	Position mgl64.Vec2
	Motion   mgl64.Vec2
	Contacts []Contact
	Skipped  int
}

// StepStats summarizes one Step for logging and tests.
type StepStats struct {
	Tick       uint64
	Bodies     int
	Candidates int
	Groups     int
	Contacts   int
	RayHits    int
	// Skipped counts events naming a body that no longer exists.
	Skipped int
}

// Step advances the world by one step: clear contacts, run the broad phase,
// narrow phase and solver, commit positions, then evaluate raycasts against
// the updated positions.
func (w *World) Step() StepStats {
	w.tick++
	w.clearContacts()

	broad := w.Broadphase()
	narrow := w.Narrowphase(broad)
	moves := w.Solve(narrow)
	w.Commit(moves)
	rayHits := w.CastRays()

	stats := StepStats{Tick: w.tick, Bodies: len(moves), RayHits: rayHits}
	for _, ev := range broad {
		stats.Candidates += len(ev.Statics)
	}
	for _, ev := range narrow {
		stats.Groups += len(ev.Groups)
		stats.Skipped += ev.Skipped
	}
	for _, ev := range moves {
		stats.Contacts += len(ev.Contacts)
		stats.Skipped += ev.Skipped
	}
	return stats
}

// Broadphase pairs every kinematic body with the statics overlapping the box
// swept by its motion. Candidates are listed in static ID order.
func (w *World) Broadphase() []BroadEvent {
	events := make([]BroadEvent, 0, len(w.kinematics))
	for i := range w.kinematics {
		k := &w.kinematics[i]
		if !k.alive {
			continue
		}

		broad := FromRectangle(k.shape, k.position).ExpandedByMotion(k.motion)
		var candidates []StaticID
		for j := range w.statics {
			s := &w.statics[j]
			if s.alive && broad.Overlaps(s.box()) {
				candidates = append(candidates, StaticID(j))
			}
		}
		events = append(events, BroadEvent{Body: KinematicID(i), Statics: candidates})
	}
	return events
}

// Narrowphase sweeps each body against its candidates and groups the hits by
// time of impact, earliest group first.
func (w *World) Narrowphase(broad []BroadEvent) []NarrowEvent {
	results := make([]NarrowEvent, len(broad))
	ok := make([]bool, len(broad))
	w.parallel(len(broad), func(i int) {
		results[i], ok[i] = w.narrowBody(broad[i])
	})
	return compact(results, ok)
}

func (w *World) narrowBody(ev BroadEvent) (NarrowEvent, bool) {
	k := w.kinematic(ev.Body)
	if k == nil {
		return NarrowEvent{}, false
	}

	out := NarrowEvent{Body: ev.Body}
	box := FromRectangle(k.shape, k.position)
	for _, id := range ev.Statics {
		s := w.static(id)
		if s == nil {
			out.Skipped++
			continue
		}
		hit, ok := box.SweepTest(s.box(), k.motion)
		if !ok {
			continue
		}
		out.Groups = w.addToGroup(out.Groups, hit.Time, id)
	}

	slices.SortStableFunc(out.Groups, func(a, b CollisionGroup) int {
		return cmp.Compare(a.Time, b.Time)
	})
	return out, true
}

func (w *World) addToGroup(groups []CollisionGroup, t float64, id StaticID) []CollisionGroup {
	for i := range groups {
		if w.sameTime(groups[i].Time, t) {
			groups[i].Statics = append(groups[i].Statics, id)
			return groups
		}
	}
	return append(groups, CollisionGroup{Time: t, Statics: []StaticID{id}})
}

// sameTime compares hit times. Without a tolerance only identical times match.
func (w *World) sameTime(a, b float64) bool {
	if w.timeTolerance == 0 {
		return a == b
	}
	return math.Abs(a-b) <= w.timeTolerance
}

// Solve resolves each body's motion group by group. Every obstacle is
// re-checked against the motion left after earlier slides, so a surface
// already cleared by a previous slide no longer blocks the body.
func (w *World) Solve(narrow []NarrowEvent) []MoveEvent {
	results := make([]MoveEvent, len(narrow))
	ok := make([]bool, len(narrow))
	w.parallel(len(narrow), func(i int) {
		results[i], ok[i] = w.solveBody(narrow[i])
	})
	return compact(results, ok)
}

func (w *World) solveBody(ev NarrowEvent) (MoveEvent, bool) {
	k := w.kinematic(ev.Body)
	if k == nil {
		return MoveEvent{}, false
	}

	box := FromRectangle(k.shape, k.position)
	motion := k.motion
	out := MoveEvent{Body: ev.Body}

	for _, group := range ev.Groups {
		for _, id := range group.Statics {
			s := w.static(id)
			if s == nil {
				out.Skipped++
				continue
			}

			target := s.box()
			if !box.ExpandedByMotion(motion).Overlaps(target) {
				continue
			}
			hit, ok := box.SweepTest(target, motion)
			if !ok {
				continue
			}

			// A lone exact-corner hit gives no normal. Widen the obstacle so
			// the body resolves against a face instead of catching on the tip.
			if hit.Normal == (mgl64.Vec2{}) && len(group.Statics) == 1 {
				widened := target.Expand(mulVec(box.Extents(), DiagonalSolve))
				hit, ok = box.SweepTest(widened, motion)
				if !ok {
					continue
				}
			}

			motion = SlideMotion(motion, hit.Normal, hit.Time)
			if hit.Normal != (mgl64.Vec2{}) {
				out.Contacts = append(out.Contacts, Contact{Static: id, Normal: hit.Normal})
			}
		}
	}

	out.Position = k.position.Add(motion)
	out.Motion = motion
	return out, true
}

// Commit writes solved positions, motions and contacts back to the bodies.
func (w *World) Commit(moves []MoveEvent) {
	for _, ev := range moves {
		k := w.kinematic(ev.Body)
		if k == nil {
			continue
		}
		k.position = ev.Position
		k.motion = ev.Motion
		k.contacts = ev.Contacts
	}
}

// CastRays evaluates every raycast against all statics and returns the total
// number of hits.
func (w *World) CastRays() int {
	total := 0
	for i := range w.rays {
		r := &w.rays[i]
		if !r.alive {
			continue
		}
		r.hits = r.hits[:0]

		origin, ok := w.rayOrigin(r)
		if !ok {
			continue
		}
		r.hits = w.castInto(r.hits, origin, r.Direction)
		total += len(r.hits)
	}
	return total
}

func (w *World) castInto(hits []RayHit, origin, direction mgl64.Vec2) []RayHit {
	broad := FromRay(origin, direction)
	ray := Ray{Origin: origin, Direction: direction}
	for j := range w.statics {
		s := &w.statics[j]
		if !s.alive {
			continue
		}
		box := s.box()
		if !broad.Overlaps(box) {
			continue
		}
		if hit, ok := ray.IntersectBox(box); ok {
			hits = append(hits, RayHit{Static: StaticID(j), Hit: hit})
		}
	}
	return hits
}

func (w *World) clearContacts() {
	for i := range w.kinematics {
		w.kinematics[i].contacts = nil
	}
}

// parallel calls fn for every index in [0, n). Each call must only write to
// its own index.
func (w *World) parallel(n int, fn func(i int)) {
	workers := min(w.workers, n)
	if workers < 2 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var wg sync.WaitGroup
	jobs := make(chan int)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

func compact[T any](items []T, keep []bool) []T {
	out := items[:0]
	for i, item := range items {
		if keep[i] {
			out = append(out, item)
		}
	}
	return out
}

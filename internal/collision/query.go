package collision

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// QueryBox returns the statics overlapping box, in ID order.
func (w *World) QueryBox(box BoundingBox) []StaticID {
	var ids []StaticID
	for i := range w.statics {
		s := &w.statics[i]
		if s.alive && box.Overlaps(s.box()) {
			ids = append(ids, StaticID(i))
		}
	}
	return ids
}

// CastRay runs a one-off ray query without registering a raycast.
// Hits are ordered by time, nearest first.
func (w *World) CastRay(origin, direction mgl64.Vec2) []RayHit {
	hits := w.castInto(nil, origin, direction)
	slices.SortStableFunc(hits, func(a, b RayHit) int {
		return cmp.Compare(a.Hit.Time, b.Hit.Time)
	})
	return hits
}

package collision

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestWorld_Handles(t *testing.T) {
	w := NewWorld()
	a := w.AddKinematic(unitBox(), mgl64.Vec2{1, 2})
	s := w.AddStatic(unitBox(), mgl64.Vec2{5, 5})

	if pos, ok := w.Position(a); !ok || pos != (mgl64.Vec2{1, 2}) {
		t.Errorf("Position() = %v, %v", pos, ok)
	}
	if box, ok := w.StaticBox(s); !ok || box.Position() != (mgl64.Vec2{5, 5}) {
		t.Errorf("StaticBox() = %v, %v", box, ok)
	}

	if !w.RemoveKinematic(a) {
		t.Fatal("RemoveKinematic() = false")
	}
	if w.RemoveKinematic(a) {
		t.Error("second RemoveKinematic() = true")
	}
	if _, ok := w.Position(a); ok {
		t.Error("Position() of removed body reported ok")
	}
	if w.SetMotion(KinematicID(42), mgl64.Vec2{1, 0}) {
		t.Error("SetMotion() on unknown body reported ok")
	}

	b := w.AddKinematic(unitBox(), mgl64.Vec2{})
	if b == a {
		t.Error("removed ID was reused")
	}
	if got := w.Kinematics(); len(got) != 1 || got[0] != b {
		t.Errorf("Kinematics() = %v, want [%d]", got, b)
	}
}

func TestWorld_AnchoredRay(t *testing.T) {
	w := NewWorld()
	body := w.AddKinematic(unitBox(), mgl64.Vec2{0, 0})
	floor := w.AddStatic(NewRectangle(10, 2), mgl64.Vec2{0, -2})
	ray := w.AddRay(Raycast{Anchor: body, Direction: mgl64.Vec2{0, -1.5}})

	w.Step()

	if !w.IsColliding(ray) {
		t.Fatal("IsColliding() = false, want true")
	}
	hits := w.RayHits(ray)
	if len(hits) != 1 || hits[0].Static != floor {
		t.Fatalf("hits = %+v", hits)
	}
	if math.Abs(hits[0].Hit.Time-2.0/3.0) > tolerance || hits[0].Hit.Normal != (mgl64.Vec2{0, 1}) {
		t.Errorf("hit = %+v, want t=2/3 normal (0,1)", hits[0].Hit)
	}

	w.SetRayDirection(ray, mgl64.Vec2{0, -0.5})
	w.Step()
	if w.IsColliding(ray) {
		t.Error("short ray still colliding")
	}

	w.SetRayDirection(ray, mgl64.Vec2{0, -1.5})
	w.RemoveKinematic(body)
	w.Step()
	if w.IsColliding(ray) {
		t.Error("ray anchored to a removed body reported hits")
	}
}

func TestWorld_RayFollowsBody(t *testing.T) {
	w := NewWorld()
	body := w.AddKinematic(unitBox(), mgl64.Vec2{0, 0})
	w.AddStatic(unitBox(), mgl64.Vec2{8, -3})
	ray := w.AddRay(Raycast{Anchor: body, Offset: mgl64.Vec2{0, -1}, Direction: mgl64.Vec2{0, -1.5}})

	w.Step()
	if w.IsColliding(ray) {
		t.Fatal("ray hit before the body moved over the block")
	}

	w.SetMotion(body, mgl64.Vec2{8, 0})
	w.Step()
	if origin, _ := w.RayOrigin(ray); origin != (mgl64.Vec2{8, -1}) {
		t.Errorf("RayOrigin() = %v, want (8,-1)", origin)
	}
	if !w.IsColliding(ray) {
		t.Error("ray did not follow the body")
	}
}

func TestWorld_WorldAnchoredRay(t *testing.T) {
	w := NewWorld()
	w.AddStatic(unitBox(), mgl64.Vec2{5, 5})
	ray := w.AddRay(Raycast{Anchor: NoBody, Position: mgl64.Vec2{5, 0}, Direction: mgl64.Vec2{0, 10}})

	w.Step()
	hits := w.RayHits(ray)
	if len(hits) != 1 || math.Abs(hits[0].Hit.Time-0.4) > tolerance {
		t.Errorf("hits = %+v, want one hit at t=0.4", hits)
	}

	w.SetRayPosition(ray, mgl64.Vec2{0, 0})
	w.Step()
	if w.IsColliding(ray) {
		t.Error("moved ray still colliding")
	}
}

func TestWorld_RayOnSeamHitsBothTiles(t *testing.T) {
	w := NewWorld()
	left := w.AddStatic(unitBox(), mgl64.Vec2{1, 3})
	right := w.AddStatic(unitBox(), mgl64.Vec2{3, 3})
	ray := w.AddRay(Raycast{Anchor: NoBody, Position: mgl64.Vec2{2, 0}, Direction: mgl64.Vec2{0, 4}})

	w.Step()

	if !w.IsColliding(ray) {
		t.Fatal("ray down the seam reported no hits")
	}
	hits := w.RayHits(ray)
	if len(hits) != 2 || hits[0].Static != left || hits[1].Static != right {
		t.Fatalf("hits = %+v, want both tiles", hits)
	}
	for _, h := range hits {
		if math.Abs(h.Hit.Time-0.5) > tolerance || h.Hit.Normal != (mgl64.Vec2{0, -1}) {
			t.Errorf("hit = %+v, want t=0.5 normal (0,-1)", h.Hit)
		}
	}
}

func TestWorld_QueryBox(t *testing.T) {
	w := NewWorld()
	a := w.AddStatic(unitBox(), mgl64.Vec2{0, 0})
	w.AddStatic(unitBox(), mgl64.Vec2{10, 0})
	c := w.AddStatic(unitBox(), mgl64.Vec2{2.5, 0})

	got := w.QueryBox(NewBoundingBox(mgl64.Vec2{1, 1}, mgl64.Vec2{1, 0}))
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("QueryBox() = %v, want [%d %d]", got, a, c)
	}
}

func TestWorld_CastRaySorted(t *testing.T) {
	w := NewWorld()
	far := w.AddStatic(NewRectangle(1, 1), mgl64.Vec2{5, 0})
	near := w.AddStatic(NewRectangle(1, 1), mgl64.Vec2{2, 0})

	hits := w.CastRay(mgl64.Vec2{0, 0}, mgl64.Vec2{10, 0})
	if len(hits) != 2 {
		t.Fatalf("hits = %+v, want 2", hits)
	}
	if hits[0].Static != near || hits[1].Static != far {
		t.Errorf("hits not nearest first: %+v", hits)
	}
	if math.Abs(hits[0].Hit.Time-0.15) > tolerance {
		t.Errorf("nearest time = %v, want 0.15", hits[0].Hit.Time)
	}
}

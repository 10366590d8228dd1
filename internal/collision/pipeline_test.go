package collision

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func unitBox() Rectangle {
	return NewRectangle(2, 2)
}

func hasContact(contacts []Contact, normal mgl64.Vec2) bool {
	for _, c := range contacts {
		if c.Normal == normal {
			return true
		}
	}
	return false
}

func TestStep_HeadOn(t *testing.T) {
	w := NewWorld()
	body := w.AddKinematic(NewRectangle(4, 4), mgl64.Vec2{-3, 0})
	wall := w.AddStatic(NewRectangle(4, 4), mgl64.Vec2{3, 0})
	w.SetMotion(body, mgl64.Vec2{4, 0})

	stats := w.Step()

	pos, _ := w.Position(body)
	if !vecNear(pos, mgl64.Vec2{-1 - 4*SlideEpsilon, 0}) {
		t.Errorf("position = %v, want just short of (-1,0)", pos)
	}
	contacts := w.Contacts(body)
	if len(contacts) != 1 || contacts[0].Static != wall || contacts[0].Normal != (mgl64.Vec2{-1, 0}) {
		t.Errorf("contacts = %+v, want one (-1,0) contact with the wall", contacts)
	}
	if stats.Tick != 1 || stats.Bodies != 1 || stats.Contacts != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestStep_SlidesAcrossTileSeam(t *testing.T) {
	w := NewWorld()
	body := w.AddKinematic(unitBox(), mgl64.Vec2{0, 0})
	for _, x := range []float64{-2, 0, 2} {
		w.AddStatic(unitBox(), mgl64.Vec2{x, -2})
	}
	w.SetMotion(body, mgl64.Vec2{1, -0.5})

	w.Step()

	pos, _ := w.Position(body)
	if math.Abs(pos.X()-1) > tolerance {
		t.Errorf("x = %v, want 1 (no snag on the seam)", pos.X())
	}
	if pos.Y() < 0 || pos.Y() > 1e-6 {
		t.Errorf("y = %v, want resting just above 0", pos.Y())
	}
	contacts := w.Contacts(body)
	if len(contacts) != 1 || contacts[0].Normal != (mgl64.Vec2{0, 1}) {
		t.Errorf("contacts = %+v, want a single floor contact", contacts)
	}
}

func TestStep_OutsideCornerResolvesToFace(t *testing.T) {
	w := NewWorld()
	body := w.AddKinematic(unitBox(), mgl64.Vec2{0, 0})
	block := w.AddStatic(unitBox(), mgl64.Vec2{3, 3})
	w.SetMotion(body, mgl64.Vec2{2, 2})

	broad := w.Broadphase()
	narrow := w.Narrowphase(broad)
	if len(narrow) != 1 || len(narrow[0].Groups) != 1 {
		t.Fatalf("narrow = %+v, want one group", narrow)
	}
	if narrow[0].Groups[0].Time != 0.5 {
		t.Errorf("group time = %v, want 0.5", narrow[0].Groups[0].Time)
	}

	w.Commit(w.Solve(narrow))

	pos, _ := w.Position(body)
	if !vecNear(pos, mgl64.Vec2{2, 1 - 2*SlideEpsilon}) {
		t.Errorf("position = %v, want flush under the block", pos)
	}
	contacts := w.Contacts(body)
	if len(contacts) != 1 || contacts[0].Static != block || contacts[0].Normal != (mgl64.Vec2{0, -1}) {
		t.Errorf("contacts = %+v, want one (0,-1) contact", contacts)
	}
}

func TestStep_InsideCorner(t *testing.T) {
	w := NewWorld()
	body := w.AddKinematic(unitBox(), mgl64.Vec2{0, 0})
	w.AddStatic(unitBox(), mgl64.Vec2{3, 0})
	w.AddStatic(unitBox(), mgl64.Vec2{0, 3})
	w.SetMotion(body, mgl64.Vec2{2, 2})

	narrow := w.Narrowphase(w.Broadphase())
	if len(narrow[0].Groups) != 1 || len(narrow[0].Groups[0].Statics) != 2 {
		t.Fatalf("groups = %+v, want both statics in one group", narrow[0].Groups)
	}
	w.Commit(w.Solve(narrow))

	pos, _ := w.Position(body)
	want := mgl64.Vec2{1 - 2*SlideEpsilon, 1 - 2*SlideEpsilon}
	if !vecNear(pos, want) {
		t.Errorf("position = %v, want %v", pos, want)
	}
	contacts := w.Contacts(body)
	if len(contacts) != 2 ||
		!hasContact(contacts, mgl64.Vec2{-1, 0}) ||
		!hasContact(contacts, mgl64.Vec2{0, -1}) {
		t.Errorf("contacts = %+v, want wall and ceiling", contacts)
	}
}

func TestStep_NoTunneling(t *testing.T) {
	w := NewWorld()
	body := w.AddKinematic(NewRectangle(1, 1), mgl64.Vec2{0, 0})
	w.AddStatic(NewRectangle(0.2, 10), mgl64.Vec2{10, 0})
	w.SetMotion(body, mgl64.Vec2{100, 0})

	w.Step()

	pos, _ := w.Position(body)
	if pos.X() >= 9.4 || pos.X() < 9.39 {
		t.Errorf("x = %v, want stopped in front of the wall at 9.4", pos.X())
	}
}

func TestStep_ZeroMotionClearsContacts(t *testing.T) {
	w := NewWorld()
	body := w.AddKinematic(NewRectangle(4, 4), mgl64.Vec2{-3, 0})
	w.AddStatic(NewRectangle(4, 4), mgl64.Vec2{3, 0})
	w.SetMotion(body, mgl64.Vec2{4, 0})
	w.Step()
	if len(w.Contacts(body)) == 0 {
		t.Fatal("expected a contact after the first step")
	}

	before, _ := w.Position(body)
	w.SetMotion(body, mgl64.Vec2{})
	w.Step()

	after, _ := w.Position(body)
	if after != before {
		t.Errorf("position moved from %v to %v with zero motion", before, after)
	}
	if got := w.Contacts(body); len(got) != 0 {
		t.Errorf("contacts = %+v, want none", got)
	}
}

func TestStep_FloorAndWall(t *testing.T) {
	w := NewWorld()
	tile := NewRectangle(1, 1)
	for x := 0; x <= 20; x++ {
		w.AddStatic(tile, mgl64.Vec2{float64(x), 0})
	}
	for y := 1; y <= 5; y++ {
		w.AddStatic(tile, mgl64.Vec2{21, float64(y)})
	}
	body := w.AddKinematic(NewRectangle(0.8, 0.8), mgl64.Vec2{2, 3})

	for i := 0; i < 80; i++ {
		w.SetMotion(body, mgl64.Vec2{0.3, -0.25})
		w.Step()

		box, _ := w.Box(body)
		if ids := w.QueryBox(box); len(ids) > 0 {
			t.Fatalf("step %d: body at %v penetrates statics %v", i, box.Position(), ids)
		}
	}

	pos, _ := w.Position(body)
	if !pos.ApproxEqualThreshold(mgl64.Vec2{20.1, 0.9}, 1e-5) {
		t.Errorf("position = %v, want resting in the corner at (20.1,0.9)", pos)
	}
	contacts := w.Contacts(body)
	if !hasContact(contacts, mgl64.Vec2{0, 1}) || !hasContact(contacts, mgl64.Vec2{-1, 0}) {
		t.Errorf("contacts = %+v, want floor and wall", contacts)
	}
}

func TestStep_RestingBodyKeepsHeight(t *testing.T) {
	w := NewWorld()
	tile := NewRectangle(1, 1)
	for x := 0; x <= 30; x++ {
		w.AddStatic(tile, mgl64.Vec2{float64(x), 0})
	}
	body := w.AddKinematic(NewRectangle(0.8, 0.8), mgl64.Vec2{1.2, 1.2})
	motion := mgl64.Vec2{0.1, -0.25}

	for i := 0; i < 2; i++ {
		w.SetMotion(body, motion)
		w.Step()
	}
	rest, _ := w.Position(body)
	if rest.Y() <= 0.9 || rest.Y() > 0.9+1e-6 {
		t.Fatalf("landed at y = %v, want just above 0.9", rest.Y())
	}

	for i := 0; i < 200; i++ {
		w.SetMotion(body, motion)
		w.Step()

		pos, _ := w.Position(body)
		if math.Abs(pos.Y()-rest.Y()) > 1e-12 {
			t.Fatalf("step %d: y drifted from %v to %v", i, rest.Y(), pos.Y())
		}
		if contacts := w.Contacts(body); len(contacts) == 0 || !hasContact(contacts, mgl64.Vec2{0, 1}) || hasContact(contacts, mgl64.Vec2{-1, 0}) {
			t.Fatalf("step %d: contacts = %+v, want floor only", i, contacts)
		}
		box, _ := w.Box(body)
		if ids := w.QueryBox(box); len(ids) > 0 {
			t.Fatalf("step %d: body penetrates statics %v", i, ids)
		}
	}

	pos, _ := w.Position(body)
	if math.Abs(pos.X()-(1.2+0.1*202)) > 1e-9 {
		t.Errorf("x = %v, want %v (no snag on seams)", pos.X(), 1.2+0.1*202)
	}
}

func TestNarrowphase_GroupsAndOrder(t *testing.T) {
	w := NewWorld()
	body := w.AddKinematic(NewRectangle(1, 1), mgl64.Vec2{0, 0})
	far := w.AddStatic(NewRectangle(1, 1), mgl64.Vec2{6, 0})
	near := w.AddStatic(NewRectangle(1, 1), mgl64.Vec2{3, 0})
	w.SetMotion(body, mgl64.Vec2{10, 0})

	narrow := w.Narrowphase(w.Broadphase())
	if len(narrow) != 1 || narrow[0].Body != body {
		t.Fatalf("narrow = %+v", narrow)
	}
	groups := narrow[0].Groups
	if len(groups) != 2 {
		t.Fatalf("groups = %+v, want 2", groups)
	}
	if groups[0].Statics[0] != near || groups[1].Statics[0] != far {
		t.Errorf("groups out of order: %+v", groups)
	}
	if groups[0].Time >= groups[1].Time {
		t.Errorf("group times not ascending: %v, %v", groups[0].Time, groups[1].Time)
	}
}

func TestWithTimeTolerance(t *testing.T) {
	build := func(opts ...Option) []NarrowEvent {
		w := NewWorld(opts...)
		body := w.AddKinematic(unitBox(), mgl64.Vec2{0, 0})
		w.AddStatic(unitBox(), mgl64.Vec2{3, 0})
		w.AddStatic(unitBox(), mgl64.Vec2{0, 3 + 1e-9})
		w.SetMotion(body, mgl64.Vec2{2, 2})
		return w.Narrowphase(w.Broadphase())
	}

	if got := len(build()[0].Groups); got != 2 {
		t.Errorf("exact grouping: %d groups, want 2", got)
	}
	if got := len(build(WithTimeTolerance(1e-6))[0].Groups); got != 1 {
		t.Errorf("tolerant grouping: %d groups, want 1", got)
	}
	for _, tol := range []float64{0, -1} {
		if got := len(build(WithTimeTolerance(tol))[0].Groups); got != 2 {
			t.Errorf("WithTimeTolerance(%v): %d groups, want exact grouping", tol, got)
		}
	}
}

func TestPipeline_SkipsRemovedStatic(t *testing.T) {
	w := NewWorld()
	body := w.AddKinematic(NewRectangle(4, 4), mgl64.Vec2{-3, 0})
	wall := w.AddStatic(NewRectangle(4, 4), mgl64.Vec2{3, 0})
	w.SetMotion(body, mgl64.Vec2{4, 0})

	broad := w.Broadphase()
	narrow := w.Narrowphase(broad)
	w.RemoveStatic(wall)

	moves := w.Solve(narrow)
	if len(moves) != 1 {
		t.Fatalf("moves = %+v, want 1", moves)
	}
	if moves[0].Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", moves[0].Skipped)
	}
	if moves[0].Position != (mgl64.Vec2{1, 0}) {
		t.Errorf("position = %v, want full motion to (1,0)", moves[0].Position)
	}
}

func TestPipeline_SkipsRemovedBody(t *testing.T) {
	w := NewWorld()
	body := w.AddKinematic(unitBox(), mgl64.Vec2{0, 0})
	other := w.AddKinematic(unitBox(), mgl64.Vec2{10, 0})
	w.SetMotion(body, mgl64.Vec2{1, 0})

	broad := w.Broadphase()
	w.RemoveKinematic(body)
	moves := w.Solve(w.Narrowphase(broad))

	if len(moves) != 1 || moves[0].Body != other {
		t.Errorf("moves = %+v, want only the surviving body", moves)
	}
}

func TestWithWorkers_MatchesSerial(t *testing.T) {
	build := func(opts ...Option) (*World, []KinematicID) {
		w := NewWorld(opts...)
		tile := NewRectangle(1, 1)
		for x := -2; x <= 40; x++ {
			w.AddStatic(tile, mgl64.Vec2{float64(x), 0})
			if x%7 == 0 {
				w.AddStatic(tile, mgl64.Vec2{float64(x), 1})
			}
		}
		var ids []KinematicID
		for i := 0; i < 24; i++ {
			ids = append(ids, w.AddKinematic(NewRectangle(0.8, 0.8), mgl64.Vec2{float64(i) * 1.5, 4 + float64(i%3)}))
		}
		return w, ids
	}

	serial, serialIDs := build()
	parallel, parallelIDs := build(WithWorkers(4))

	for step := 0; step < 60; step++ {
		for i := range serialIDs {
			dir := 0.2
			if i%2 == 1 {
				dir = -0.2
			}
			motion := mgl64.Vec2{dir, -0.3}
			serial.SetMotion(serialIDs[i], motion)
			parallel.SetMotion(parallelIDs[i], motion)
		}
		a := serial.Step()
		b := parallel.Step()
		if a != b {
			t.Fatalf("step %d: stats differ: %+v vs %+v", step, a, b)
		}
	}

	for i := range serialIDs {
		p1, _ := serial.Position(serialIDs[i])
		p2, _ := parallel.Position(parallelIDs[i])
		if p1 != p2 {
			t.Errorf("body %d: serial %v, parallel %v", i, p1, p2)
		}
	}
}

package movement

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/freerun/common"
)

func floorSurface() Surface {
	return Surface{
		ID:        1,
		Layer:     0,
		Transform: common.NewTransform(mgl64.Vec3{0, -0.5, 0}),
		Size:      mgl64.Vec3{40, 1, 40},
	}
}

func wallSurface() Surface {
	return Surface{
		ID:        2,
		Layer:     3,
		Transform: common.NewTransform(mgl64.Vec3{0, 1, 5}),
		Size:      mgl64.Vec3{4, 2, 1},
	}
}

func TestKinematicGravityAndSnap(t *testing.T) {
	k := NewKinematic(mgl64.Vec3{0, 2, 0}, 0.3)
	k.AddSurface(floorSurface())

	for i := 0; i < 120; i++ {
		k.Step(1.0/60, mgl64.Vec3{})
	}

	if got := k.Transform().Position.Y(); math.Abs(got) > 1e-9 {
		t.Fatalf("character should rest on the floor, y = %v", got)
	}
	if !k.Grounded() {
		t.Fatalf("character should be grounded after settling")
	}
	c, ok := k.Contact()
	if !ok || c.Surface.ID != 1 || !c.Grounded {
		t.Fatalf("contact = %+v ok=%v, want grounded on floor", c, ok)
	}
}

func TestKinematicFlagsSuspendPhysics(t *testing.T) {
	k := NewKinematic(mgl64.Vec3{0, 2, 0}, 0.3)
	k.AddSurface(floorSurface())
	k.SetFlags(AllFlags(false))

	for i := 0; i < 60; i++ {
		k.Step(1.0/60, mgl64.Vec3{})
	}

	if got := k.Transform().Position.Y(); math.Abs(got-2) > 1e-9 {
		t.Fatalf("with all flags off the character must not fall, y = %v", got)
	}
	if _, ok := k.Contact(); ok {
		t.Fatalf("with all flags off no contact should be recorded")
	}
}

func TestKinematicWallContact(t *testing.T) {
	k := NewKinematic(mgl64.Vec3{0, 0, 3}, 0.3)
	k.AddSurface(floorSurface())
	k.AddSurface(wallSurface())

	// walk toward the wall until the controller stops us against it
	for i := 0; i < 120; i++ {
		k.Step(1.0/60, mgl64.Vec3{0, 0, 2})
	}

	c, ok := k.Contact()
	if !ok || !c.Colliding {
		t.Fatalf("expected a colliding contact, got %+v ok=%v", c, ok)
	}
	if c.Surface.ID != 2 {
		t.Fatalf("colliding surface id = %d, want the wall", c.Surface.ID)
	}
	if !c.Grounded {
		t.Fatalf("contact should still report grounded while on the floor")
	}
	wantZ := 5 - 0.5 - 0.3 // wall face minus capsule radius
	if got := k.Transform().Position.Z(); math.Abs(got-wantZ) > 1e-6 {
		t.Fatalf("character z = %v, want stopped at %v", got, wantZ)
	}
}

func TestKinematicPreviousContactSurvivesLeavingGround(t *testing.T) {
	ledge := Surface{
		ID:        3,
		Layer:     7,
		Transform: common.NewTransform(mgl64.Vec3{0, 1, 0}),
		Size:      mgl64.Vec3{4, 2, 4},
	}
	k := NewKinematic(mgl64.Vec3{0, 2, 0}, 0.3)
	k.AddSurface(ledge)

	k.Step(1.0/60, mgl64.Vec3{})
	if !k.Grounded() {
		t.Fatalf("character should start grounded on the ledge")
	}

	// walk off the edge
	for i := 0; i < 120; i++ {
		k.Step(1.0/60, mgl64.Vec3{4, 0, 0})
	}
	if k.Grounded() {
		t.Fatalf("character should have left the ledge")
	}

	prev, ok := k.PreviousContact()
	if !ok || prev.Surface.ID != 3 || !prev.Grounded {
		t.Fatalf("previous contact = %+v ok=%v, want the ledge", prev, ok)
	}
}

func TestSurfaceTopCorners(t *testing.T) {
	s := Surface{
		Transform: common.NewTransform(mgl64.Vec3{1, 0, 1}),
		Size:      mgl64.Vec3{2, 1, 2},
	}
	want := [4]mgl64.Vec3{
		{0, 0.5, 0},
		{2, 0.5, 0},
		{2, 0.5, 2},
		{0, 0.5, 2},
	}
	got := s.TopCorners()
	for i := range want {
		if got[i].Sub(want[i]).Len() > 1e-9 {
			t.Fatalf("corner %d = %v, want %v", i, got[i], want[i])
		}
	}
}

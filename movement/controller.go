package movement

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/freerun/common"
	"github.com/milk9111/freerun/obstacle"
)

// Flags toggles the controller's physics behaviors. The traversal ability
// drives all four in lock-step: all off while it owns a transition, all on
// otherwise. Nothing else writes them.
type Flags struct {
	Collision             bool
	GroundSnap            bool
	PenetrationResolution bool
	Gravity               bool
}

// AllFlags returns all four flags set to on.
func AllFlags(on bool) Flags {
	return Flags{
		Collision:             on,
		GroundSnap:            on,
		PenetrationResolution: on,
		Gravity:               on,
	}
}

// Surface is the slice of obstacle data the controller tracks per contact:
// enough for classification, the alignment gate, and the drop-down search.
type Surface struct {
	ID        uint64
	Layer     obstacle.Layer
	Transform common.Transform
	Size      mgl64.Vec3 // full extents along the surface's local axes
}

// TopCorners returns the surface's top face corners in world space, in
// cyclic order.
func (s Surface) TopCorners() [4]mgl64.Vec3 {
	hx := s.Size.X() / 2
	hy := s.Size.Y() / 2
	hz := s.Size.Z() / 2
	local := [4]mgl64.Vec3{
		{-hx, hy, -hz},
		{hx, hy, -hz},
		{hx, hy, hz},
		{-hx, hy, hz},
	}
	var out [4]mgl64.Vec3
	for i, v := range local {
		out[i] = s.Transform.Position.Add(s.Transform.Orientation.Rotate(v))
	}
	return out
}

// Up returns the surface's up vector in world space.
func (s Surface) Up() mgl64.Vec3 {
	return s.Transform.Up()
}

// Contact records the character's relationship with one surface for a
// single frame.
type Contact struct {
	Surface   Surface
	Point     mgl64.Vec3
	Grounded  bool
	Colliding bool
}

// Controller is the movement boundary the traversal ability suspends while
// a transition owns the character.
type Controller interface {
	SetFlags(Flags)
	Flags() Flags
	Transform() common.Transform
	SetTransform(common.Transform)
	// Contact returns the surface the character currently touches.
	Contact() (Contact, bool)
	// PreviousContact returns the last grounded contact, kept after the
	// character leaves the ground so a drop-down can still find its ledge.
	PreviousContact() (Contact, bool)
}

package movement

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/freerun/common"
)

const (
	gravityAccel  = -22.0
	snapTolerance = 0.12
	terminalFall  = -40.0
)

// Kinematic is the default Controller: gravity integration, ground
// snapping, penetration resolution, and box collision against registered
// surfaces. It is deliberately simple; anything fancier sits behind the
// Controller interface.
type Kinematic struct {
	flags     Flags
	transform common.Transform
	velY      float64
	radius    float64

	surfaces []Surface

	contact    Contact
	hasContact bool
	prev       Contact
	hasPrev    bool
}

// NewKinematic creates a controller for a character of the given capsule
// radius, with all flags enabled.
func NewKinematic(start mgl64.Vec3, radius float64) *Kinematic {
	return &Kinematic{
		flags:     AllFlags(true),
		transform: common.NewTransform(start),
		radius:    radius,
	}
}

// AddSurface registers a static obstacle volume.
func (k *Kinematic) AddSurface(s Surface) {
	if k == nil {
		return
	}
	k.surfaces = append(k.surfaces, s)
}

func (k *Kinematic) SetFlags(f Flags) { k.flags = f }
func (k *Kinematic) Flags() Flags     { return k.flags }

func (k *Kinematic) Transform() common.Transform { return k.transform }
func (k *Kinematic) SetTransform(t common.Transform) {
	k.transform = t
}

func (k *Kinematic) Contact() (Contact, bool) {
	return k.contact, k.hasContact
}

func (k *Kinematic) PreviousContact() (Contact, bool) {
	return k.prev, k.hasPrev
}

// Grounded reports whether the character stood on a surface last step.
func (k *Kinematic) Grounded() bool {
	return k.hasContact && k.contact.Grounded
}

// Step advances the character one frame. move is the desired horizontal
// velocity in world units per second; the character turns to face it.
func (k *Kinematic) Step(dt float64, move mgl64.Vec3) {
	if k == nil || dt <= 0 {
		return
	}

	pos := k.transform.Position

	if k.flags.Gravity {
		k.velY += gravityAccel * dt
		if k.velY < terminalFall {
			k.velY = terminalFall
		}
	} else {
		k.velY = 0
	}

	horizontal := mgl64.Vec3{move.X(), 0, move.Z()}
	pos = pos.Add(horizontal.Mul(dt))
	pos = mgl64.Vec3{pos.X(), pos.Y() + k.velY*dt, pos.Z()}

	var side, ground Contact
	hasSide, hasGround := false, false

	if k.flags.Collision {
		pos, side, hasSide = k.resolveSides(pos)
	}
	if k.flags.PenetrationResolution || k.flags.GroundSnap {
		pos, ground, hasGround = k.resolveGround(pos)
	}

	if horizontal.Len() > 0 {
		k.transform.Orientation = common.BasisQuat(horizontal, common.AxisUp)
	}
	k.transform.Position = pos

	// one record per frame: the colliding surface wins the reference, the
	// grounded flag survives the merge
	k.hasContact = hasSide || hasGround
	switch {
	case hasSide:
		k.contact = side
		k.contact.Grounded = hasGround
	case hasGround:
		k.contact = ground
	default:
		k.contact = Contact{}
	}

	if hasGround {
		k.prev = ground
		k.hasPrev = true
	}
}

// resolveSides pushes the character out of surface volumes horizontally and
// reports the colliding surface.
func (k *Kinematic) resolveSides(pos mgl64.Vec3) (mgl64.Vec3, Contact, bool) {
	var hit Contact
	found := false
	for _, s := range k.surfaces {
		inv := s.Transform.Orientation.Inverse()
		local := inv.Rotate(pos.Sub(s.Transform.Position))

		hx := s.Size.X()/2 + k.radius
		hy := s.Size.Y() / 2
		hz := s.Size.Z()/2 + k.radius

		// only the torso band collides with sides; feet at or above the
		// top belong to ground resolution
		if local.Y() < -hy || local.Y() >= hy-snapTolerance {
			continue
		}
		if math.Abs(local.X()) >= hx || math.Abs(local.Z()) >= hz {
			continue
		}

		penX := hx - math.Abs(local.X())
		penZ := hz - math.Abs(local.Z())
		if penX < penZ {
			local = mgl64.Vec3{math.Copysign(hx, local.X()), local.Y(), local.Z()}
		} else {
			local = mgl64.Vec3{local.X(), local.Y(), math.Copysign(hz, local.Z())}
		}
		pos = s.Transform.Position.Add(s.Transform.Orientation.Rotate(local))

		hit = Contact{Surface: s, Point: pos, Colliding: true}
		found = true
	}
	return pos, hit, found
}

// resolveGround snaps the character onto the highest supporting surface
// under it and resolves downward penetration into surface tops.
func (k *Kinematic) resolveGround(pos mgl64.Vec3) (mgl64.Vec3, Contact, bool) {
	groundY := math.Inf(-1)
	var ground Surface
	hasGround := false

	for _, s := range k.surfaces {
		inv := s.Transform.Orientation.Inverse()
		local := inv.Rotate(pos.Sub(s.Transform.Position))
		if math.Abs(local.X()) > s.Size.X()/2 || math.Abs(local.Z()) > s.Size.Z()/2 {
			continue
		}
		topLocal := mgl64.Vec3{local.X(), s.Size.Y() / 2, local.Z()}
		top := s.Transform.Position.Add(s.Transform.Orientation.Rotate(topLocal))
		if top.Y() > groundY {
			groundY = top.Y()
			ground = s
			hasGround = true
		}
	}
	if !hasGround {
		return pos, Contact{}, false
	}

	snapped := false
	if k.flags.PenetrationResolution && pos.Y() < groundY && pos.Y() > groundY-ground.Size.Y() {
		snapped = true
	}
	if k.flags.GroundSnap && k.velY <= 0 && math.Abs(pos.Y()-groundY) <= snapTolerance {
		snapped = true
	}
	if !snapped {
		return pos, Contact{}, false
	}

	pos = mgl64.Vec3{pos.X(), groundY, pos.Z()}
	k.velY = 0
	return pos, Contact{Surface: ground, Point: pos, Grounded: true}, true
}

package common

import "github.com/go-gl/mathgl/mgl64"

// Local basis convention: +X right, +Y up, +Z forward.
var (
	AxisRight   = mgl64.Vec3{1, 0, 0}
	AxisUp      = mgl64.Vec3{0, 1, 0}
	AxisForward = mgl64.Vec3{0, 0, 1}
)

// Transform is a world-space position and orientation pair.
type Transform struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// NewTransform returns a transform at pos with an identity orientation.
func NewTransform(pos mgl64.Vec3) Transform {
	return Transform{Position: pos, Orientation: mgl64.QuatIdent()}
}

// Forward returns the transform's forward direction in world space.
func (t Transform) Forward() mgl64.Vec3 {
	return t.Orientation.Rotate(AxisForward)
}

// Right returns the transform's right direction in world space.
func (t Transform) Right() mgl64.Vec3 {
	return t.Orientation.Rotate(AxisRight)
}

// Up returns the transform's up direction in world space.
func (t Transform) Up() mgl64.Vec3 {
	return t.Orientation.Rotate(AxisUp)
}

// BasisQuat builds an orientation looking along forward with the given up.
// The right axis is re-derived so the basis stays right-handed even when
// forward and up are not exactly perpendicular.
func BasisQuat(forward, up mgl64.Vec3) mgl64.Quat {
	f := forward.Normalize()
	r := up.Cross(f)
	if r.Len() == 0 {
		// forward parallel to up; pick an arbitrary perpendicular
		r = f.Cross(AxisForward)
		if r.Len() == 0 {
			r = f.Cross(AxisRight)
		}
	}
	r = r.Normalize()
	u := f.Cross(r).Normalize()
	m := mgl64.Mat3FromCols(r, u, f)
	return mgl64.Mat4ToQuat(m.Mat4())
}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// LerpVec3 interpolates between two points component-wise.
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

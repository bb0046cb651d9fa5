package obstacle

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/freerun/common"
)

// AlignmentToleranceDeg is the fixed angular tolerance for the approach
// gate. A contact counts as facing a surface axis when its forward
// direction is within this many degrees of the axis.
const AlignmentToleranceDeg = 5.0

var cosAlignmentTolerance = math.Cos(mgl64.DegToRad(AlignmentToleranceDeg))

// Aligned reports whether the contact, expressed relative to the surface,
// faces the nominated surface axis within AlignmentToleranceDeg.
func Aligned(surface, contact common.Transform, axis Axis) bool {
	rel := surface.Orientation.Inverse().Mul(contact.Orientation)
	dir := rel.Rotate(common.AxisForward)
	return dir.Dot(axis.Direction()) >= cosAlignmentTolerance
}

// PassesGate reports whether a classified contact may start a transition.
// The contact must face at least one permissible axis of its category.
// Categories with an empty axis set (DropDown) always pass; None never does.
func PassesGate(surface, contact common.Transform, category Category) bool {
	if category == None {
		return false
	}
	axes := PermissibleAxes(category)
	if len(axes) == 0 {
		return true
	}
	for _, axis := range axes {
		if Aligned(surface, contact, axis) {
			return true
		}
	}
	return false
}

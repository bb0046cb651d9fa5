package obstacle

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/freerun/common"
)

// Layer identifies the physical collision layer a surface was authored on.
type Layer int

// Category classifies a touchable surface for traversal. It is derived once
// per contact from the surface's layer and never changes afterwards.
type Category int

const (
	None Category = iota
	Wall
	Table
	Platform
	Ledge
	DropDown
)

func (c Category) String() string {
	switch c {
	case Wall:
		return "wall"
	case Table:
		return "table"
	case Platform:
		return "platform"
	case Ledge:
		return "ledge"
	case DropDown:
		return "drop_down"
	default:
		return "none"
	}
}

// ParseCategory maps a config string to a category. Unknown strings map to
// None, mirroring how unrecognized layers classify.
func ParseCategory(s string) Category {
	switch s {
	case "wall":
		return Wall
	case "table":
		return Table
	case "platform":
		return Platform
	case "ledge":
		return Ledge
	case "drop_down":
		return DropDown
	default:
		return None
	}
}

// Axis names a local surface axis usable as an approach direction.
type Axis int

const (
	AxisForward Axis = iota
	AxisRight
)

func (a Axis) String() string {
	if a == AxisRight {
		return "right"
	}
	return "forward"
}

// Direction returns the axis direction in surface-local space.
func (a Axis) Direction() mgl64.Vec3 {
	if a == AxisRight {
		return common.AxisRight
	}
	return common.AxisForward
}

// LayerTable maps collision layers to categories. The table is authored
// externally (config/ability.yaml) and treated as read-only here.
type LayerTable map[Layer]Category

// Classify returns the category for a layer, or None when the layer is not
// a recognized traversal surface.
func (t LayerTable) Classify(layer Layer) Category {
	if t == nil {
		return None
	}
	return t[layer]
}

// PermissibleAxes returns which local surface axes are valid approach
// directions for a category. DropDown returns nil: it is approached from
// above by construction and skips the alignment gate entirely.
func PermissibleAxes(c Category) []Axis {
	switch c {
	case Wall, Table:
		return []Axis{AxisForward}
	case Platform:
		return []Axis{AxisForward, AxisRight}
	case Ledge:
		return []Axis{AxisRight}
	default:
		return nil
	}
}

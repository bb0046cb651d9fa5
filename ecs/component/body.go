package component

import "github.com/milk9111/freerun/movement"

// Body attaches a kinematic mover to an entity. Speed is the walk speed
// in world units per second.
type Body struct {
	Mover *movement.Kinematic
	Speed float64
}

var BodyComponent = NewComponent[Body]()

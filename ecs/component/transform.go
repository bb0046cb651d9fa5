package component

import "github.com/milk9111/freerun/common"

// Transform mirrors the mover's pose after the movement system runs, so
// render and debug code never reach into the controller directly.
type Transform struct {
	Pose common.Transform
}

var TransformComponent = NewComponent[Transform]()

package component

import (
	"github.com/milk9111/freerun/motion"
	"github.com/milk9111/freerun/traversal"
)

// Traverser owns the traversal ability driving an entity's transitions.
// Library is the same engine the ability queries; the traversal system
// uses it to record the origin and sample playback poses. WasGrounded
// carries last frame's ground state so the system can spot the instant
// the entity walks off an edge, and LastHandle lets it catch the frame a
// new transition is claimed.
type Traverser struct {
	Ability     *traversal.Ability
	Library     *motion.Library
	WasGrounded bool
	LastHandle  motion.TransitionHandle
}

var TraverserComponent = NewComponent[Traverser]()

package motion

import (
	"github.com/milk9111/freerun/common"
	"github.com/milk9111/freerun/obstacle"
)

// SubState is the engine-side lifecycle stage of an in-flight transition.
type SubState int

const (
	Invalid SubState = iota
	Created
	Playing
	Complete
	Failed
)

func (s SubState) String() string {
	switch s {
	case Created:
		return "created"
	case Playing:
		return "playing"
	case Complete:
		return "complete"
	case Failed:
		return "failed"
	default:
		return "invalid"
	}
}

// Terminal reports whether the transition has finished, successfully or not.
func (s SubState) Terminal() bool {
	return s == Complete || s == Failed
}

// SequenceHandle references a pose sequence owned by the engine. The zero
// value is invalid.
type SequenceHandle uint32

// Valid reports whether the handle references a sequence.
func (h SequenceHandle) Valid() bool { return h != 0 }

// TransitionHandle is a generation-tagged index into the engine's
// transition arena. The zero value is invalid, and a handle goes stale as
// soon as its slot is reused. Callers never see raw slot pointers.
type TransitionHandle struct {
	index uint32
	gen   uint32
}

// Valid reports whether the handle ever referenced a transition. A valid
// handle may still be stale; SubState answers that.
func (h TransitionHandle) Valid() bool { return h.gen != 0 }

// Engine is the motion-matching boundary the traversal ability talks to.
// Pose data never crosses it; only handles and sub-states do.
type Engine interface {
	// QueryPoseSequence finds a pose sequence matching the anchor and
	// category, with contactThreshold bounding how far the sequence's
	// contact point may sit from the live contact.
	QueryPoseSequence(anchor common.Transform, category obstacle.Category, contactThreshold float64) (SequenceHandle, bool)

	// BeginAnchoredTransition starts a transition toward anchor using the
	// given sequence. The error maxima bound how much warping the engine
	// may apply to hit the anchor exactly.
	BeginAnchoredTransition(seq SequenceHandle, anchor common.Transform, maxLinearError, maxAngularError float64) (TransitionHandle, bool)

	// Tick advances the transition's internal clock.
	Tick(h TransitionHandle, dt float64)

	// SubState reports the transition's lifecycle stage. Stale or zero
	// handles report Invalid.
	SubState(h TransitionHandle) SubState
}

package motion

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/freerun/common"
	"github.com/milk9111/freerun/obstacle"
)

// Sequence describes a registered pose sequence. ContactDistance is the
// distance from the character root at which the sequence makes contact
// with its obstacle; a query only matches when it fits the caller's
// contact threshold.
type Sequence struct {
	Name            string
	Category        obstacle.Category
	Duration        float64
	ContactDistance float64
}

// Library is the default in-process Engine: a registry of sequences and an
// arena of transition slots addressed by generation-tagged handles.
type Library struct {
	sequences []Sequence
	slots     []slot
}

type slot struct {
	gen       uint32
	state     SubState
	seq       SequenceHandle
	anchor    common.Transform
	origin    common.Transform
	hasOrigin bool
	maxLinear float64
	maxAngle  float64
	elapsed   float64
	duration  float64
}

// NewLibrary creates an empty sequence library.
func NewLibrary() *Library {
	return &Library{}
}

// Register adds a sequence and returns its handle.
func (l *Library) Register(seq Sequence) SequenceHandle {
	if l == nil || seq.Duration <= 0 {
		return 0
	}
	l.sequences = append(l.sequences, seq)
	return SequenceHandle(len(l.sequences))
}

func (l *Library) sequence(h SequenceHandle) (Sequence, bool) {
	if l == nil || !h.Valid() || int(h) > len(l.sequences) {
		return Sequence{}, false
	}
	return l.sequences[h-1], true
}

// QueryPoseSequence returns the first registered sequence for the category
// whose contact distance fits within the threshold. The scan order is
// registration order, so results are deterministic.
func (l *Library) QueryPoseSequence(anchor common.Transform, category obstacle.Category, contactThreshold float64) (SequenceHandle, bool) {
	if l == nil || category == obstacle.None {
		return 0, false
	}
	for i, seq := range l.sequences {
		if seq.Category != category {
			continue
		}
		if seq.ContactDistance > contactThreshold {
			continue
		}
		return SequenceHandle(i + 1), true
	}
	return 0, false
}

// BeginAnchoredTransition claims an arena slot for the sequence. Terminal
// slots are reused with a bumped generation, so handles held past a
// transition's end go stale instead of aliasing the new occupant.
func (l *Library) BeginAnchoredTransition(seq SequenceHandle, anchor common.Transform, maxLinearError, maxAngularError float64) (TransitionHandle, bool) {
	s, ok := l.sequence(seq)
	if !ok {
		return TransitionHandle{}, false
	}

	idx := -1
	for i := range l.slots {
		if l.slots[i].state == Invalid || l.slots[i].state.Terminal() {
			idx = i
			break
		}
	}
	if idx < 0 {
		l.slots = append(l.slots, slot{})
		idx = len(l.slots) - 1
	}

	gen := l.slots[idx].gen + 1
	l.slots[idx] = slot{
		gen:       gen,
		state:     Created,
		seq:       seq,
		anchor:    anchor,
		maxLinear: maxLinearError,
		maxAngle:  maxAngularError,
		duration:  s.Duration,
	}
	log.Printf("Library: began transition %q slot=%d gen=%d", s.Name, idx, gen)
	return TransitionHandle{index: uint32(idx), gen: gen}, true
}

func (l *Library) resolve(h TransitionHandle) *slot {
	if l == nil || !h.Valid() || int(h.index) >= len(l.slots) {
		return nil
	}
	s := &l.slots[h.index]
	if s.gen != h.gen {
		return nil
	}
	return s
}

// SetOrigin records where the character was when the transition began.
// Playback warps from this origin to the anchor; if the origin sits
// outside the transition's error maxima the transition fails on its next
// tick instead of teleporting the character.
func (l *Library) SetOrigin(h TransitionHandle, origin common.Transform) {
	s := l.resolve(h)
	if s == nil {
		return
	}
	s.origin = origin
	s.hasOrigin = true
}

// Tick advances the transition clock and resolves state changes.
func (l *Library) Tick(h TransitionHandle, dt float64) {
	s := l.resolve(h)
	if s == nil || s.state.Terminal() {
		return
	}
	if s.state == Created {
		if s.hasOrigin && !l.withinErrorBounds(s) {
			s.state = Failed
			log.Printf("Library: transition slot=%d failed, origin outside error bounds", h.index)
			return
		}
		s.state = Playing
	}
	s.elapsed += dt
	if s.elapsed >= s.duration {
		s.elapsed = s.duration
		s.state = Complete
	}
}

func (l *Library) withinErrorBounds(s *slot) bool {
	seq, ok := l.sequence(s.seq)
	if !ok {
		return false
	}
	linear := s.origin.Position.Sub(s.anchor.Position).Len() - seq.ContactDistance
	if linear > s.maxLinear {
		return false
	}
	toAnchor := s.anchor.Position.Sub(s.origin.Position)
	if toAnchor.Len() == 0 {
		return true
	}
	angle := angleBetween(s.origin.Forward(), toAnchor)
	return angle <= mgl64.DegToRad(s.maxAngle)
}

// SubState reports the lifecycle stage for a handle. Stale handles report
// Invalid, never the slot's current occupant.
func (l *Library) SubState(h TransitionHandle) SubState {
	s := l.resolve(h)
	if s == nil {
		return Invalid
	}
	return s.state
}

// Sample returns the character transform for the transition's current
// progress: a warp from origin to anchor. ok is false for stale handles or
// transitions with no recorded origin.
func (l *Library) Sample(h TransitionHandle) (common.Transform, bool) {
	s := l.resolve(h)
	if s == nil || !s.hasOrigin || s.duration <= 0 {
		return common.Transform{}, false
	}
	t := common.Clamp(s.elapsed/s.duration, 0, 1)
	out := common.Transform{
		Position:    common.LerpVec3(s.origin.Position, s.anchor.Position, t),
		Orientation: mgl64.QuatSlerp(s.origin.Orientation, s.anchor.Orientation, t),
	}
	return out, true
}

func angleBetween(a, b mgl64.Vec3) float64 {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return 0
	}
	cos := common.Clamp(a.Dot(b)/(la*lb), -1, 1)
	return math.Acos(cos)
}

package traversal

import (
	"log"

	"github.com/milk9111/freerun/common"
	"github.com/milk9111/freerun/motion"
	"github.com/milk9111/freerun/movement"
	"github.com/milk9111/freerun/obstacle"
)

// Config bounds how far a candidate anchor may deviate from the live
// contact and still be accepted. Values are fixed for the ability's
// lifetime; config.Load validates their ranges.
type Config struct {
	ContactThreshold float64
	MaxLinearError   float64
	MaxAngularError  float64
}

// ContactEvent is one frame's physical contact plus input intent. It is
// built fresh each frame and never retained.
type ContactEvent struct {
	Surface   movement.Surface
	Contact   common.Transform
	Intent    bool
	Colliding bool
}

// Ability owns at most one in-flight traversal transition. While its
// handle is live the movement controller's four flags are all off; the
// moment the transition reaches a terminal sub-state they all come back.
// Only Update, OnContact, and OnDrop ever touch the handle or the flags.
type Ability struct {
	table  obstacle.LayerTable
	engine motion.Engine
	mover  movement.Controller
	cfg    Config

	handle motion.TransitionHandle
	snap   Snapshot
}

// NewAbility wires the ability to its collaborators. The layer table and
// tolerances are read-only from here on.
func NewAbility(table obstacle.LayerTable, engine motion.Engine, mover movement.Controller, cfg Config) *Ability {
	return &Ability{
		table:  table,
		engine: engine,
		mover:  mover,
		cfg:    cfg,
	}
}

// Active reports whether the ability currently owns a transition.
func (a *Ability) Active() bool {
	return a.handle.Valid()
}

// Handle exposes the current transition handle for playback sampling.
// The zero handle means idle.
func (a *Ability) Handle() motion.TransitionHandle {
	return a.handle
}

// Config returns the ability's tolerances.
func (a *Ability) Config() Config {
	return a.cfg
}

// Update is the per-frame entry point. It pushes the movement flags in
// lock-step with ownership, advances a live transition, and releases the
// handle the same frame its sub-state turns terminal. The return value is
// true while the ability is driving the character.
func (a *Ability) Update(dt float64) bool {
	active := a.handle.Valid()
	a.mover.SetFlags(movement.AllFlags(!active))
	if !active {
		return false
	}

	state := a.engine.SubState(a.handle)
	if state.Terminal() || state == motion.Invalid {
		log.Printf("Ability: transition reached %v, releasing handle", state)
		a.handle = motion.TransitionHandle{}
		a.mover.SetFlags(movement.AllFlags(true))
		a.snap.Active = false
		return false
	}

	a.engine.Tick(a.handle, dt)
	return true
}

// OnContact evaluates a physical contact event. It is only meaningful
// while idle; the update loop is the sole caller and only calls it then,
// so a live handle simply short-circuits. A false return means no
// qualifying transition this frame, never an error.
func (a *Ability) OnContact(ev ContactEvent) bool {
	if a.handle.Valid() {
		return false
	}
	if !ev.Intent || !ev.Colliding {
		return false
	}

	category := a.table.Classify(ev.Surface.Layer)
	a.snap = Snapshot{
		Category: category,
		Surface:  ev.Surface,
		Config:   a.cfg,
	}
	if category == obstacle.None {
		return false
	}
	if !obstacle.PassesGate(ev.Surface.Transform, ev.Contact, category) {
		return false
	}

	anchor := ev.Contact
	if category == obstacle.DropDown {
		found := obstacle.ClosestEdgeAnchor(ev.Surface.TopCorners(), ev.Surface.Up(), a.mover.Transform().Position)
		anchor = found.Transform
	}
	return a.request(anchor, category)
}

// OnDrop evaluates the moment the character leaves a grounded contact. If
// the previous surface classifies as a drop-down, the closest boundary
// edge of its top face becomes the anchor.
func (a *Ability) OnDrop(dt float64) bool {
	if a.handle.Valid() {
		return false
	}

	prev, ok := a.mover.PreviousContact()
	if !ok || !prev.Grounded {
		return false
	}
	category := a.table.Classify(prev.Surface.Layer)
	if category != obstacle.DropDown {
		return false
	}

	found := obstacle.ClosestEdgeAnchor(prev.Surface.TopCorners(), prev.Surface.Up(), a.mover.Transform().Position)
	a.snap = Snapshot{
		Category:  category,
		Surface:   prev.Surface,
		Anchor:    found,
		HasAnchor: true,
		Config:    a.cfg,
	}
	return a.request(found.Transform, category)
}

func (a *Ability) request(anchor common.Transform, category obstacle.Category) bool {
	seq, ok := a.engine.QueryPoseSequence(anchor, category, a.cfg.ContactThreshold)
	if !ok {
		return false
	}
	handle, ok := a.engine.BeginAnchoredTransition(seq, anchor, a.cfg.MaxLinearError, a.cfg.MaxAngularError)
	if !ok {
		return false
	}

	a.handle = handle
	a.mover.SetFlags(movement.AllFlags(false))
	if !a.snap.HasAnchor {
		a.snap.Anchor = obstacle.Anchor{Transform: anchor}
		a.snap.HasAnchor = true
	}
	a.snap.Accepted = true
	a.snap.Active = true
	log.Printf("Ability: accepted %v transition", category)
	return true
}

// DebugSnapshot returns an immutable copy of the last classification the
// visualizer may render. It never exposes the handle.
func (a *Ability) DebugSnapshot() Snapshot {
	return a.snap
}

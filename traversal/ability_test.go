package traversal

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/freerun/common"
	"github.com/milk9111/freerun/motion"
	"github.com/milk9111/freerun/movement"
	"github.com/milk9111/freerun/obstacle"
)

var testTable = obstacle.LayerTable{
	3: obstacle.Wall,
	5: obstacle.Platform,
	7: obstacle.DropDown,
}

var testConfig = Config{
	ContactThreshold: 0.5,
	MaxLinearError:   1,
	MaxAngularError:  180,
}

// countingEngine counts transition requests so tests can prove the
// orchestrator never double-submits.
type countingEngine struct {
	*motion.Library
	begins int
}

func (e *countingEngine) BeginAnchoredTransition(seq motion.SequenceHandle, anchor common.Transform, maxLin, maxAng float64) (motion.TransitionHandle, bool) {
	h, ok := e.Library.BeginAnchoredTransition(seq, anchor, maxLin, maxAng)
	if ok {
		e.begins++
	}
	return h, ok
}

// stubMover satisfies movement.Controller with directly settable state.
type stubMover struct {
	flags     movement.Flags
	transform common.Transform
	contact   movement.Contact
	hasCtc    bool
	prev      movement.Contact
	hasPrev   bool
}

func (m *stubMover) SetFlags(f movement.Flags)           { m.flags = f }
func (m *stubMover) Flags() movement.Flags               { return m.flags }
func (m *stubMover) Transform() common.Transform         { return m.transform }
func (m *stubMover) SetTransform(t common.Transform)     { m.transform = t }
func (m *stubMover) Contact() (movement.Contact, bool)   { return m.contact, m.hasCtc }
func (m *stubMover) PreviousContact() (movement.Contact, bool) {
	return m.prev, m.hasPrev
}

func newTestEngine(t *testing.T) *countingEngine {
	t.Helper()
	lib := motion.NewLibrary()
	seqs := []motion.Sequence{
		{Name: "vault_wall", Category: obstacle.Wall, Duration: 0.4, ContactDistance: 0.3},
		{Name: "mount_platform", Category: obstacle.Platform, Duration: 0.6, ContactDistance: 0.3},
		{Name: "drop_down", Category: obstacle.DropDown, Duration: 0.5, ContactDistance: 0.2},
	}
	for _, s := range seqs {
		if h := lib.Register(s); !h.Valid() {
			t.Fatalf("register %q failed", s.Name)
		}
	}
	return &countingEngine{Library: lib}
}

func wallEvent() ContactEvent {
	return ContactEvent{
		Surface: movement.Surface{
			ID:        2,
			Layer:     3,
			Transform: common.NewTransform(mgl64.Vec3{0, 1, 5}),
			Size:      mgl64.Vec3{4, 2, 1},
		},
		Contact:   common.NewTransform(mgl64.Vec3{0, 0, 4.2}),
		Intent:    true,
		Colliding: true,
	}
}

func checkFlags(t *testing.T, m *stubMover, want bool) {
	t.Helper()
	if m.flags != movement.AllFlags(want) {
		t.Fatalf("movement flags = %+v, want all %v", m.flags, want)
	}
}

func TestScenarioPlatformContact(t *testing.T) {
	engine := newTestEngine(t)
	mover := &stubMover{flags: movement.AllFlags(true)}
	ability := NewAbility(testTable, engine, mover, testConfig)

	ev := ContactEvent{
		Surface: movement.Surface{
			ID:        4,
			Layer:     5,
			Transform: common.NewTransform(mgl64.Vec3{0, 0.5, 3}),
			Size:      mgl64.Vec3{2, 1, 2},
		},
		Contact:   common.NewTransform(mgl64.Vec3{0, 0, 2.5}),
		Intent:    true,
		Colliding: true,
	}

	if !ability.OnContact(ev) {
		t.Fatalf("platform contact with forward alignment should be accepted")
	}
	if !ability.Active() {
		t.Fatalf("handle should be valid after an accepted contact")
	}
	checkFlags(t, mover, false)
}

func TestOnContactRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ContactEvent)
	}{
		{"no_intent", func(ev *ContactEvent) { ev.Intent = false }},
		{"not_colliding", func(ev *ContactEvent) { ev.Colliding = false }},
		{"unknown_layer", func(ev *ContactEvent) { ev.Surface.Layer = 42 }},
		{"misaligned", func(ev *ContactEvent) {
			// the wall's only permissible axis is forward; face it
			// sideways instead
			ev.Contact.Orientation = mgl64.QuatRotate(mgl64.DegToRad(90), common.AxisUp)
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			engine := newTestEngine(t)
			mover := &stubMover{flags: movement.AllFlags(true)}
			ability := NewAbility(testTable, engine, mover, testConfig)

			ev := wallEvent()
			c.mutate(&ev)
			if ability.OnContact(ev) {
				t.Fatalf("contact should have been rejected")
			}
			if ability.Active() {
				t.Fatalf("no handle should exist after a rejected contact")
			}
			if engine.begins != 0 {
				t.Fatalf("engine received %d requests for a rejected contact", engine.begins)
			}
			if ability.Update(1.0 / 60) {
				t.Fatalf("idle update should yield control")
			}
			checkFlags(t, mover, true)
		})
	}
}

func TestGateAcceptsForwardWall(t *testing.T) {
	engine := newTestEngine(t)
	mover := &stubMover{flags: movement.AllFlags(true)}
	ability := NewAbility(testTable, engine, mover, testConfig)

	if !ability.OnContact(wallEvent()) {
		t.Fatalf("forward-aligned wall contact should be accepted")
	}
}

func TestAtMostOneOwner(t *testing.T) {
	engine := newTestEngine(t)
	mover := &stubMover{flags: movement.AllFlags(true)}
	ability := NewAbility(testTable, engine, mover, testConfig)

	if !ability.OnContact(wallEvent()) {
		t.Fatalf("first contact should be accepted")
	}
	first := ability.Handle()

	// hammer the ability with further contacts while the transition runs
	for i := 0; i < 10; i++ {
		if ability.OnContact(wallEvent()) {
			t.Fatalf("contact %d accepted while a transition is active", i)
		}
		if ability.OnDrop(1.0 / 60) {
			t.Fatalf("drop %d accepted while a transition is active", i)
		}
		if got := ability.Handle(); got != first {
			t.Fatalf("handle changed while active: %v -> %v", first, got)
		}
	}
	if engine.begins != 1 {
		t.Fatalf("engine received %d requests, want exactly 1", engine.begins)
	}
}

func TestFlagsTrackOwnership(t *testing.T) {
	engine := newTestEngine(t)
	mover := &stubMover{flags: movement.AllFlags(true)}
	ability := NewAbility(testTable, engine, mover, testConfig)

	// idle frames keep everything enabled
	for i := 0; i < 3; i++ {
		if ability.Update(1.0 / 60) {
			t.Fatalf("idle update should yield control")
		}
		checkFlags(t, mover, true)
	}

	if !ability.OnContact(wallEvent()) {
		t.Fatalf("contact should be accepted")
	}
	checkFlags(t, mover, false)

	// every active frame the flags stay in lock-step with ownership
	for ability.Active() {
		driving := ability.Update(1.0 / 60)
		checkFlags(t, mover, !driving)
	}
	checkFlags(t, mover, true)
}

func TestTerminalReleaseSameFrame(t *testing.T) {
	for _, terminal := range []string{"complete", "failed"} {
		t.Run(terminal, func(t *testing.T) {
			engine := newTestEngine(t)
			mover := &stubMover{flags: movement.AllFlags(true)}
			ability := NewAbility(testTable, engine, mover, testConfig)

			if !ability.OnContact(wallEvent()) {
				t.Fatalf("contact should be accepted")
			}

			if terminal == "failed" {
				// an origin far outside the error maxima fails the
				// transition on its first tick
				engine.SetOrigin(ability.Handle(), common.NewTransform(mgl64.Vec3{0, 0, -50}))
				if !ability.Update(1.0 / 60) {
					t.Fatalf("first update should still be driving")
				}
			} else {
				// one tick runs the clock past the sequence duration
				if !ability.Update(0.5) {
					t.Fatalf("first update should still be driving")
				}
			}

			// this frame's poll sees the terminal sub-state: the handle
			// must drop and the flags must restore within the same call
			if ability.Update(1.0 / 60) {
				t.Fatalf("terminal update should yield control")
			}
			if ability.Active() {
				t.Fatalf("handle should be invalid after a terminal sub-state")
			}
			checkFlags(t, mover, true)
		})
	}
}

func TestReacquireAfterRelease(t *testing.T) {
	engine := newTestEngine(t)
	mover := &stubMover{flags: movement.AllFlags(true)}
	ability := NewAbility(testTable, engine, mover, testConfig)

	if !ability.OnContact(wallEvent()) {
		t.Fatalf("first contact should be accepted")
	}
	for ability.Active() {
		ability.Update(0.5)
	}

	// idle again: a fresh contact may claim a new handle
	if !ability.OnContact(wallEvent()) {
		t.Fatalf("contact after release should be accepted")
	}
	if engine.begins != 2 {
		t.Fatalf("engine received %d requests, want 2", engine.begins)
	}
}

func TestOnDrop(t *testing.T) {
	ledge := movement.Surface{
		ID:        3,
		Layer:     7,
		Transform: common.NewTransform(mgl64.Vec3{0.5, 0.5, 0.5}),
		Size:      mgl64.Vec3{1, 1, 1},
	}

	t.Run("accepted_with_closest_edge_anchor", func(t *testing.T) {
		engine := newTestEngine(t)
		mover := &stubMover{
			flags:     movement.AllFlags(true),
			transform: common.NewTransform(mgl64.Vec3{0.5, 1, -1}),
			prev:      movement.Contact{Surface: ledge, Grounded: true},
			hasPrev:   true,
		}
		ability := NewAbility(testTable, engine, mover, testConfig)

		if !ability.OnDrop(1.0 / 60) {
			t.Fatalf("drop from a drop-down surface should be accepted")
		}
		snap := ability.DebugSnapshot()
		if !snap.HasAnchor {
			t.Fatalf("snapshot should carry the chosen anchor")
		}
		// the ledge top spans (0,1,0)..(1,1,1); from z=-1 the closest
		// boundary point is on the near edge
		want := mgl64.Vec3{0.5, 1, 0}
		if snap.Anchor.Position.Sub(want).Len() > 1e-9 {
			t.Fatalf("anchor position = %v, want %v", snap.Anchor.Position, want)
		}
		if snap.Anchor.Edge != 0 {
			t.Fatalf("anchor edge = %d, want 0", snap.Anchor.Edge)
		}
	})

	t.Run("rejected_without_previous_contact", func(t *testing.T) {
		engine := newTestEngine(t)
		mover := &stubMover{flags: movement.AllFlags(true)}
		ability := NewAbility(testTable, engine, mover, testConfig)
		if ability.OnDrop(1.0 / 60) {
			t.Fatalf("drop without a previous contact should be rejected")
		}
	})

	t.Run("rejected_for_non_drop_surface", func(t *testing.T) {
		engine := newTestEngine(t)
		wall := ledge
		wall.Layer = 3
		mover := &stubMover{
			flags:   movement.AllFlags(true),
			prev:    movement.Contact{Surface: wall, Grounded: true},
			hasPrev: true,
		}
		ability := NewAbility(testTable, engine, mover, testConfig)
		if ability.OnDrop(1.0 / 60) {
			t.Fatalf("drop from a wall-layer surface should be rejected")
		}
	})
}

func TestDropDownContactSkipsAlignment(t *testing.T) {
	engine := newTestEngine(t)
	mover := &stubMover{
		flags:     movement.AllFlags(true),
		transform: common.NewTransform(mgl64.Vec3{0.5, 1, -1}),
	}
	ability := NewAbility(testTable, engine, mover, testConfig)

	ev := ContactEvent{
		Surface: movement.Surface{
			ID:        3,
			Layer:     7,
			Transform: common.NewTransform(mgl64.Vec3{0.5, 0.5, 0.5}),
			Size:      mgl64.Vec3{1, 1, 1},
		},
		// deliberately face an arbitrary direction: DropDown must bypass
		// the alignment gate entirely
		Contact: common.Transform{
			Position:    mgl64.Vec3{0.5, 1, -0.2},
			Orientation: mgl64.QuatRotate(mgl64.DegToRad(137), common.AxisUp),
		},
		Intent:    true,
		Colliding: true,
	}

	if !ability.OnContact(ev) {
		t.Fatalf("drop-down contact should bypass the alignment gate")
	}
	snap := ability.DebugSnapshot()
	if math.IsNaN(snap.Anchor.Position.X()) {
		t.Fatalf("anchor should be finite")
	}
}

func TestUpdateWithStaleHandle(t *testing.T) {
	// if the engine recycles a slot out from under us, the next update
	// must treat the stale handle as terminal and release cleanly
	engine := newTestEngine(t)
	mover := &stubMover{flags: movement.AllFlags(true)}
	ability := NewAbility(testTable, engine, mover, testConfig)

	if !ability.OnContact(wallEvent()) {
		t.Fatalf("contact should be accepted")
	}
	// finish the transition engine-side without telling the ability
	engine.Tick(ability.Handle(), 10)
	if _, ok := engine.Library.BeginAnchoredTransition(1, common.NewTransform(mgl64.Vec3{}), 1, 180); !ok {
		t.Fatalf("direct engine begin failed")
	}

	if ability.Update(1.0 / 60) {
		t.Fatalf("update with a stale handle should yield control")
	}
	if ability.Active() {
		t.Fatalf("stale handle should have been released")
	}
	checkFlags(t, mover, true)
}

package system

import (
	"github.com/milk9111/freerun/common"
	"github.com/milk9111/freerun/ecs"
	"github.com/milk9111/freerun/ecs/component"
	"github.com/milk9111/freerun/traversal"
)

// TraversalSystem feeds this frame's contact events into each entity's
// traversal ability, fires drop evaluation the instant a grounded entity
// walks off an edge, and advances the ability every frame so its
// movement flags stay in lock-step with handle ownership.
type TraversalSystem struct{}

func NewTraversalSystem() *TraversalSystem {
	return &TraversalSystem{}
}

func (t *TraversalSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, evt := range w.Events().Drain() {
		if evt.Type != ecs.EventContact {
			continue
		}
		data, ok := evt.Data.(ecs.ContactEvent)
		if !ok {
			continue
		}
		t.onContact(w, data)
	}

	ecs.ForEach3(w, component.TraverserComponent.Kind(), component.BodyComponent.Kind(), component.InputComponent.Kind(),
		func(e ecs.Entity, trav *component.Traverser, body *component.Body, input *component.Input) {
			if trav.Ability == nil || body.Mover == nil {
				return
			}

			// walking off an edge and a deliberate drop both qualify
			grounded := body.Mover.Grounded()
			if (trav.WasGrounded && !grounded) || input.DropPressed {
				trav.Ability.OnDrop(tickSeconds)
			}
			trav.WasGrounded = grounded

			// a freshly claimed handle needs its origin recorded before
			// the first tick, or the error-bounds check never runs
			handle := trav.Ability.Handle()
			if handle.Valid() && handle != trav.LastHandle && trav.Library != nil {
				trav.Library.SetOrigin(handle, body.Mover.Transform())
			}
			trav.LastHandle = handle

			if trav.Ability.Update(tickSeconds) && trav.Library != nil {
				if pose, ok := trav.Library.Sample(trav.Ability.Handle()); ok {
					body.Mover.SetTransform(pose)
					if transform, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
						transform.Pose = pose
					}
				}
			}
		})
}

func (t *TraversalSystem) onContact(w *ecs.World, data ecs.ContactEvent) {
	trav, ok := ecs.Get(w, data.Entity, component.TraverserComponent.Kind())
	if !ok || trav.Ability == nil {
		return
	}
	input, ok := ecs.Get(w, data.Entity, component.InputComponent.Kind())
	if !ok {
		return
	}
	body, ok := ecs.Get(w, data.Entity, component.BodyComponent.Kind())
	if !ok || body.Mover == nil {
		return
	}

	trav.Ability.OnContact(traversal.ContactEvent{
		Surface: data.Contact.Surface,
		Contact: common.Transform{
			Position:    data.Contact.Point,
			Orientation: body.Mover.Transform().Orientation,
		},
		Intent:    input.Interact || input.InteractPressed,
		Colliding: data.Contact.Colliding,
	})
}

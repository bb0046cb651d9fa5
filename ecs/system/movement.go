package system

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/freerun/ecs"
	"github.com/milk9111/freerun/ecs/component"
)

// tickSeconds is the fixed simulation step; ebiten drives Update at 60hz.
const tickSeconds = 1.0 / 60.0

// MovementSystem steps every kinematic body with its entity's input,
// mirrors the resulting pose into the transform component, and publishes
// a contact event when the body pushed against a surface this frame.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (m *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.BodyComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, body *component.Body, input *component.Input, transform *component.Transform) {
			if body.Mover == nil {
				return
			}

			move := mgl64.Vec3{input.MoveX, 0, input.MoveZ}
			if l := move.Len(); l > 1 {
				move = move.Mul(1 / l)
			}
			move = move.Mul(body.Speed)

			body.Mover.Step(tickSeconds, move)
			transform.Pose = body.Mover.Transform()

			if contact, ok := body.Mover.Contact(); ok && contact.Colliding {
				w.Events().Push(ecs.Event{
					Type: ecs.EventContact,
					Data: ecs.ContactEvent{Entity: e, Contact: contact},
				})
			}
		})
}

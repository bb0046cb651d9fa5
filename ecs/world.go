package ecs

import "github.com/milk9111/freerun/ecs/component"

// World owns entities, component stores, and the frame event queue.
// Systems run against it through a Scheduler.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity kills an entity and drops its components. It returns
// false for a handle that was never alive or is already stale.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.destroy(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return true
}

// IsAlive reports whether an entity handle is still current.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.alive(e)
}

// Entities returns all live entities.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) store(id component.ComponentID) *SparseSet {
	if s, ok := w.stores[id]; ok {
		return s
	}
	s := &SparseSet{}
	w.stores[id] = s
	return s
}

// lookup returns nil when no component of this kind was ever added.
func (w *World) lookup(id component.ComponentID) *SparseSet {
	return w.stores[id]
}

package ecs

import "github.com/milk9111/freerun/ecs/component"

func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if w == nil || !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.entities.alive(e) {
		return component.ErrEntityNotAlive
	}
	w.store(kind.ID()).Set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !kind.Valid() {
		return false
	}
	return w.lookup(kind.ID()).Remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w != nil && kind.Valid() && w.lookup(kind.ID()).Has(e)
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil || !kind.Valid() {
		return nil, false
	}
	v := w.lookup(kind.ID()).Get(e)
	cast, ok := v.(*T)
	if !ok {
		return nil, false
	}
	return cast, true
}

// First returns any one live entity holding the component, for
// singletons like the player.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	if w == nil || !kind.Valid() {
		return 0, false
	}
	s := w.lookup(kind.ID())
	if s == nil {
		return 0, false
	}
	for _, e := range s.Entities() {
		if w.entities.alive(e) {
			return e, true
		}
	}
	return 0, false
}

// ForEach visits every live entity holding the component. The callback
// may add or remove components; it iterates over a snapshot.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || !kind.Valid() || fn == nil {
		return
	}
	s := w.lookup(kind.ID())
	if s == nil {
		return
	}
	dense := append([]Entity(nil), s.dense...)
	values := append([]any(nil), s.values...)
	for i, e := range dense {
		if !w.entities.alive(e) {
			continue
		}
		if v, ok := values[i].(*T); ok {
			fn(e, v)
		}
	}
}

// ForEach2 visits live entities holding both components.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	ForEach(w, ka, func(e Entity, a *A) {
		b, ok := Get(w, e, kb)
		if !ok {
			return
		}
		fn(e, a, b)
	})
}

// ForEach3 visits live entities holding all three components.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if w == nil || fn == nil {
		return
	}
	ForEach(w, ka, func(e Entity, a *A) {
		b, ok := Get(w, e, kb)
		if !ok {
			return
		}
		c, ok := Get(w, e, kc)
		if !ok {
			return
		}
		fn(e, a, b, c)
	})
}

package ecs

import "github.com/milk9111/undercroft/ecs/component"

func typed[T any](w *World, h component.ComponentHandle[T]) *typedStore[T] {
	if s, ok := w.storeFor(h.ID()); ok {
		return s.(*typedStore[T])
	}
	s := &typedStore[T]{}
	w.putStore(h.ID(), s)
	return s
}

// Add attaches (or overwrites) a component on an entity.
func Add[T any](w *World, e Entity, h component.ComponentHandle[T], value T) error {
	if !h.Valid() {
		return component.ErrInvalidComponentKind
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	typed(w, h).set(e, value)
	return nil
}

// Get returns a mutable pointer to an entity's component. Mutations
// through the pointer are visible immediately; no write-back is needed.
func Get[T any](w *World, e Entity, h component.ComponentHandle[T]) (*T, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	v, ok := typed(w, h).get(e.id())
	return v, ok
}

// Remove detaches a component from an entity.
func Remove[T any](w *World, e Entity, h component.ComponentHandle[T]) bool {
	if !w.IsAlive(e) {
		return false
	}
	return typed(w, h).removeID(e.id())
}

// Has reports whether an entity carries a component.
func Has[T any](w *World, e Entity, h component.ComponentHandle[T]) bool {
	return w.IsAlive(e) && typed(w, h).hasID(e.id())
}

// First returns any single live entity carrying the component.
func First[T any](w *World, h component.ComponentHandle[T]) (Entity, bool) {
	for _, e := range typed(w, h).owners() {
		if w.IsAlive(e) {
			return e, true
		}
	}
	return 0, false
}

// Count returns the number of live entities carrying the component.
func Count[T any](w *World, h component.ComponentHandle[T]) int {
	n := 0
	for _, e := range typed(w, h).owners() {
		if w.IsAlive(e) {
			n++
		}
	}
	return n
}

// ForEach visits every live entity with the component. Iteration runs
// over a snapshot of the owner list, so handlers may create or destroy
// entities freely.
func ForEach[T any](w *World, h component.ComponentHandle[T], fn func(e Entity, v *T)) {
	s := typed(w, h)
	snapshot := append([]Entity(nil), s.owners()...)
	for _, e := range snapshot {
		if !w.IsAlive(e) {
			continue
		}
		if v, ok := s.get(e.id()); ok {
			fn(e, v)
		}
	}
}

// ForEach2 visits every live entity carrying both components.
func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(e Entity, a *A, b *B)) {
	ForEach(w, ha, func(e Entity, a *A) {
		if b, ok := Get(w, e, hb); ok {
			fn(e, a, b)
		}
	})
}

// ForEach3 visits every live entity carrying all three components.
func ForEach3[A, B, C any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], hc component.ComponentHandle[C], fn func(e Entity, a *A, b *B, c *C)) {
	ForEach(w, ha, func(e Entity, a *A) {
		b, ok := Get(w, e, hb)
		if !ok {
			return
		}
		if c, ok := Get(w, e, hc); ok {
			fn(e, a, b, c)
		}
	})
}

// Entities returns all live entities.
func Entities(w *World) []Entity {
	out := make([]Entity, 0, 64)
	w.entities.each(func(e Entity) {
		out = append(out, e)
	})
	return out
}

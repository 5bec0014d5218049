package ecs

import "github.com/milk9111/undercroft/ecs/component"

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// World owns entities, components, and system order. It is passed
// explicitly to every system; nothing in the simulation reaches for
// package-level state.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	systems  []System
	events   EventQueue

	dt      float64
	pending []Entity
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

// CreateEntity allocates a new entity handle.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity kills an entity handle immediately (IsAlive turns false
// and stale handles stop resolving) but defers component removal to the
// end of the current step, so systems iterating storages never see
// their footing removed mid-loop.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	w.pending = append(w.pending, e)
	return true
}

// IsAlive reports whether an entity handle is still valid.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.contains(e)
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// DT returns the simulation delta for the current step, in seconds.
// Slow motion and freeze frames are already applied by the clock.
func (w *World) DT() float64 {
	return w.dt
}

// Update runs all systems once with the given simulation delta, then
// flushes deferred destruction and the event queue.
func (w *World) Update(dt float64) {
	if w == nil {
		return
	}
	w.dt = dt
	for _, s := range w.systems {
		if s != nil {
			s.Update(w)
		}
	}
	w.flushDestroyed()
	w.events.flush()
}

// Clear destroys every live entity and drops all component data. Used
// for room teardown.
func (w *World) Clear() {
	w.entities.each(func(e Entity) {
		if w.entities.destroy(e) {
			w.pending = append(w.pending, e)
		}
	})
	for _, s := range w.stores {
		s.clear()
	}
	for _, e := range w.pending {
		w.entities.release(e.id())
	}
	w.pending = w.pending[:0]
}

// FlushDestroyed removes component data for entities destroyed since
// the last flush. Update calls this automatically; tests that poke the
// world directly may call it themselves.
func (w *World) FlushDestroyed() {
	w.flushDestroyed()
}

func (w *World) flushDestroyed() {
	for _, e := range w.pending {
		for _, s := range w.stores {
			s.removeID(e.id())
		}
		// only now may the slot be recycled
		w.entities.release(e.id())
	}
	w.pending = w.pending[:0]
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) storeFor(id component.ComponentID) (store, bool) {
	s, ok := w.stores[id]
	return s, ok
}

func (w *World) putStore(id component.ComponentID, s store) {
	w.stores[id] = s
}

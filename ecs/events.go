package ecs

import "github.com/milk9111/undercroft/common"

// Event is a boundary request raised by a system during a step and
// drained by the presentation layer at the end of the same step.
type Event struct {
	Type string
	Data any
}

const (
	EventSound     = "sound"
	EventParticles = "particles"
)

// SoundRequest asks the audio boundary to play a sound by id.
// Fire-and-forget; there is no completion signal.
type SoundRequest struct {
	ID string
}

// ParticleRequest asks the particle boundary to emit a preset burst.
type ParticleRequest struct {
	Origin common.Vec2
	Preset string
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// PushSound enqueues a sound boundary request.
func (q *EventQueue) PushSound(id string) {
	q.Push(Event{Type: EventSound, Data: SoundRequest{ID: id}})
}

// PushParticles enqueues a particle boundary request.
func (q *EventQueue) PushParticles(origin common.Vec2, preset string) {
	q.Push(Event{Type: EventParticles, Data: ParticleRequest{Origin: origin, Preset: preset}})
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}

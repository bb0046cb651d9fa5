package ecs

import "github.com/milk9111/freerun/movement"

// Event is a frame-scoped message between systems. Unconsumed events are
// dropped when the scheduler finishes the frame.
type Event struct {
	Type string
	Data any
}

// EventContact carries a ContactEvent payload.
const EventContact = "contact"

// ContactEvent reports a mover's resolved contact for this frame.
type ContactEvent struct {
	Entity  Entity
	Contact movement.Contact
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

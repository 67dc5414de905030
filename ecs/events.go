package ecs

import "github.com/milk9111/tilephys/physics"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// CollisionEventKind identifies collision event types.
type CollisionEventKind string

const (
	CollisionEventGrounded  CollisionEventKind = "grounded"
	CollisionEventHitHazard CollisionEventKind = "hazard"
	CollisionEventOverlap   CollisionEventKind = "overlap"
	CollisionEventLadder    CollisionEventKind = "ladder"
)

// EventTypeCollision is the Event.Type of every CollisionEvent.
const EventTypeCollision = "collision"

// CollisionEvent is emitted when collision state changes. Other is set for
// overlaps, Tile for trigger tiles.
type CollisionEvent struct {
	Entity Entity
	Kind   CollisionEventKind
	Other  Entity
	Tile   physics.TileType
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

// Len is the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
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

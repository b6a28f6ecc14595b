package ecs

// CollisionEventKind identifies collision event types drained from the
// physics step.
type CollisionEventKind string

const (
	CollisionEventCoin   CollisionEventKind = "coin"
	CollisionEventBounce CollisionEventKind = "bounce"
)

// CollisionEvent is emitted when a handled collision pair fires.
type CollisionEvent struct {
	Kind CollisionEventKind
	A    Entity
	B    Entity
}

// EventQueue is a simple FIFO queue of collision events.
type EventQueue struct {
	items []CollisionEvent
}

// Push adds an event.
func (q *EventQueue) Push(evt CollisionEvent) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []CollisionEvent {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

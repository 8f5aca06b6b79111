package ecs

// CollisionEventKind identifies collision event types.
type CollisionEventKind int

const (
	CollisionStarted CollisionEventKind = iota + 1
	CollisionStopped
)

func (k CollisionEventKind) String() string {
	switch k {
	case CollisionStarted:
		return "started"
	case CollisionStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// CollisionEvent records two collider entities starting or stopping contact.
type CollisionEvent struct {
	Kind CollisionEventKind
	A    Entity
	B    Entity
}

// EventQueue is a simple FIFO queue.
type EventQueue[T any] struct {
	items []T
}

// Push adds an event.
func (q *EventQueue[T]) Push(evt T) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue[T]) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue[T]) Drain() []T {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

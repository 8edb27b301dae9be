package logging

import "sync"

// Ring is a bounded in-memory event buffer. Once full, writing a new event
// evicts the oldest one. It backs the debug pane of the interactive session.
type Ring struct {
	mu       sync.Mutex
	capacity int
	events   []Event
}

// NewRing creates a ring holding at most capacity events.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{
		capacity: capacity,
		events:   make([]Event, 0, capacity),
	}
}

// Write appends an event, evicting the oldest entry when full.
func (r *Ring) Write(event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.events) == r.capacity {
		copy(r.events, r.events[1:])
		r.events = r.events[:r.capacity-1]
	}
	r.events = append(r.events, event)
	return nil
}

// Len returns the number of buffered events.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Entries returns a copy of all buffered events, oldest first.
func (r *Ring) Entries() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Tail returns a copy of the last n events, oldest first.
func (r *Ring) Tail(n int) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n <= 0 {
		return nil
	}
	if n > len(r.events) {
		n = len(r.events)
	}
	out := make([]Event, n)
	copy(out, r.events[len(r.events)-n:])
	return out
}

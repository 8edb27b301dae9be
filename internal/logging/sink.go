package logging

import (
	"fmt"
	"time"
)

// Event is a single debug log entry.
type Event struct {
	// Time is when the event occurred.
	Time time.Time `json:"time"`

	// Message is the human-readable entry text.
	Message string `json:"message"`
}

// NewEvent returns an event stamped with the current UTC time.
func NewEvent(format string, args ...any) Event {
	return Event{
		Time:    time.Now().UTC(),
		Message: fmt.Sprintf(format, args...),
	}
}

// Sink receives debug events.
type Sink interface {
	Write(event Event) error
}

// MultiSink writes to multiple sinks.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink creates a new multi-sink.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Write writes the event to all underlying sinks.
func (m *MultiSink) Write(event Event) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Write(event); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multi-sink errors: %v", errs)
	}
	return nil
}

// NopSink is a no-op sink.
type NopSink struct{}

// Write does nothing.
func (NopSink) Write(event Event) error {
	return nil
}

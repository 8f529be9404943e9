package shared

import (
	"fmt"

	"github.com/google/uuid"
)

// EventID is a value object identifying one audit log entry
type EventID struct {
	value string
}

// NewEventID creates a new EventID with a generated UUID
func NewEventID() EventID {
	return EventID{value: uuid.New().String()}
}

// NewEventIDFromString creates an EventID from an existing UUID string
func NewEventIDFromString(id string) (EventID, error) {
	if id == "" {
		return EventID{}, fmt.Errorf("event_id cannot be empty")
	}

	if _, err := uuid.Parse(id); err != nil {
		return EventID{}, fmt.Errorf("invalid event_id format: %w", err)
	}

	return EventID{value: id}, nil
}

// Value returns the string value of the EventID
func (e EventID) Value() string {
	return e.value
}

// String returns a string representation of the EventID
func (e EventID) String() string {
	return e.value
}

// Equals checks if two EventIDs are equal
func (e EventID) Equals(other EventID) bool {
	return e.value == other.value
}

// IsZero checks if the EventID is the zero value (uninitialized)
func (e EventID) IsZero() bool {
	return e.value == ""
}

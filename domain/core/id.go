package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	DecisionID ID
	EventKey   ID
)

func (id DecisionID) String() string { return ID(id).String() }
func (k EventKey) String() string    { return ID(k).String() }

// ParseEventKey parses a string into EventKey
func ParseEventKey(s string) (EventKey, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("event key cannot be empty")
	}
	return EventKey(s), nil
}

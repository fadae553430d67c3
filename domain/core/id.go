package core

import (
	"github.com/google/uuid"
)

// RunID identifies one load run. It tags the mapping report and the
// temporary file used for the atomic master replace.
type RunID string

// NewRunID creates a time-ordered run identifier (UUID v7, falling back
// to v4 when v7 generation fails).
func NewRunID() RunID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return RunID(id.String())
}

// String returns the string representation
func (id RunID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id RunID) IsEmpty() bool {
	return id == ""
}

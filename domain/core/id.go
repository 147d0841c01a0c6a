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

// ImportID identifies one uploaded history file.
type ImportID ID

func (id ImportID) String() string { return ID(id).String() }

// ParseImportID parses a string into ImportID
func ParseImportID(s string) (ImportID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("import ID cannot be empty")
	}
	return ImportID(s), nil
}

package repository

import (
	"strings"

	"github.com/google/uuid"
)

// IsValidID reports whether s is a well-formed storage identifier
func IsValidID(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// ParseID parses a storage identifier
func ParseID(s string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(s))
}

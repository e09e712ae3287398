// Package id provides UUIDv7 generation for all ledger records.
// UUIDv7 is time-ordered, so ids created later sort after earlier ones.
package id

import (
	"github.com/google/uuid"
)

// ID is a type alias for UUID.
type ID = uuid.UUID

// New generates a new UUIDv7 (time-ordered UUID).
func New() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to V4 if V7 fails (should never happen)
		return uuid.New()
	}
	return id
}

// NewString returns a new UUIDv7 in its canonical string form.
// Records store ids as strings so that externally supplied references
// (which are never validated) round-trip unchanged.
func NewString() string {
	return New().String()
}

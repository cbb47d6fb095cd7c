package models

import (
	"errors"
	"fmt"
)

// ErrRecordNotFound is returned when neither the primary inspectionCode
// lookup nor the (warehouseCode, submitted) fallback finds a record.
var ErrRecordNotFound = errors.New("inspection record not found")

// ErrConflict is returned when a transition carries a stale record version.
var ErrConflict = errors.New("record was modified by another user")

// ValidationError is the structured result of a failed transition gate. It is
// returned, not panicked, so the UI can highlight the first offending field
// and show how many remain. The gate mutates nothing on failure.
type ValidationError struct {
	MissingFields []string
}

// FirstMissing is the first offending field in gate enumeration order.
func (e *ValidationError) FirstMissing() string {
	if len(e.MissingFields) == 0 {
		return ""
	}
	return e.MissingFields[0]
}

func (e *ValidationError) Error() string {
	if len(e.MissingFields) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s (%d field(s) missing)",
		e.MissingFields[0], len(e.MissingFields))
}

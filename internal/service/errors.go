package service

import "strings"

// ValidationError is returned when a request fails rule validation. It
// carries every violation the failing stage produced, in the order the
// rules ran, so callers can fix all problems in one round trip.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

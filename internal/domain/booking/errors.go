package booking

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrBookingConflict = errors.New("booking time slot is already taken")
)

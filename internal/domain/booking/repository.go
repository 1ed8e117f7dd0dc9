package booking

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new booking. The insert re-checks for an
	// overlapping non-cancelled booking inside the same transaction and
	// returns ErrBookingConflict if a concurrent writer took the slot
	// between validation and write.
	Create(ctx context.Context, b *Booking) error

	// GetByID retrieves a booking by primary key. Returns
	// ErrBookingNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// Cancel flags the booking as cancelled. Cancelling an unknown or
	// already-cancelled booking is a no-op.
	Cancel(ctx context.Context, id uuid.UUID) error

	// List returns bookings matching the query. Order is unspecified.
	List(ctx context.Context, q *ListBookingsQuery) ([]*Booking, error)

	// FindOverlapping returns the non-cancelled bookings of one patient or
	// one doctor that intersect the queried half-open interval.
	FindOverlapping(ctx context.Context, q *OverlapQuery) ([]*Booking, error)
}

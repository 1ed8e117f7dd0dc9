package clinic

import "context"

type Repository interface {
	// Create persists a new clinic and assigns its ID.
	Create(ctx context.Context, c *Clinic) error

	// GetByID retrieves a clinic by primary key. Returns ErrClinicNotFound
	// if not found.
	GetByID(ctx context.Context, id int64) (*Clinic, error)

	// List returns all clinics.
	List(ctx context.Context) ([]*Clinic, error)
}

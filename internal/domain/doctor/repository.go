package doctor

import "context"

type Repository interface {
	// Create persists a new doctor and assigns its ID. Returns
	// ErrDoctorAlreadyExists on a duplicate email.
	Create(ctx context.Context, d *Doctor) error

	// GetByID retrieves a doctor by primary key. Returns ErrDoctorNotFound
	// if not found.
	GetByID(ctx context.Context, id int64) (*Doctor, error)

	// ExistsByEmail checks for uniqueness without fetching the record.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List returns all doctors.
	List(ctx context.Context) ([]*Doctor, error)
}

package patient

import "context"

type Repository interface {
	// Create persists a new patient and assigns its ID. Returns
	// ErrPatientAlreadyExists on a duplicate email.
	Create(ctx context.Context, p *Patient) error

	// GetByID retrieves a patient by primary key. Returns
	// ErrPatientNotFound if not found.
	GetByID(ctx context.Context, id int64) (*Patient, error)

	// GetWithClinic retrieves a patient with its clinic preloaded. Used
	// when the clinic's surgery type is denormalized onto a new booking.
	GetWithClinic(ctx context.Context, id int64) (*Patient, error)

	// ExistsByEmail checks for uniqueness without fetching the record.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List returns all patients.
	List(ctx context.Context) ([]*Patient, error)
}

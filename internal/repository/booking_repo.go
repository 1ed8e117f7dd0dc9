// Package repository holds the gorm-backed implementations of the domain
// repository interfaces.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/booking"
)

type BookingRepo struct {
	db *gorm.DB
}

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// Create inserts the booking inside a transaction that first locks and
// re-checks any overlapping non-cancelled booking of the same doctor or
// patient. The validator already checked overlap on its own read path;
// this guard closes the race between that read and our write.
func (r *BookingRepo) Create(ctx context.Context, b *booking.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing booking.Booking
		err := tx.Model(&booking.Booking{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("NOT is_cancelled").
			Where("doctor_id = ? OR patient_id = ?", b.DoctorID, b.PatientID).
			Where("start_time < ? AND end_time > ?", b.EndTime, b.StartTime).
			Take(&existing).Error

		if err == nil {
			return booking.ErrBookingConflict
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(b).Error
	})
}

func (r *BookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var b booking.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Cancel sets is_cancelled on the booking. An unknown id updates zero
// rows, which is not an error.
func (r *BookingRepo) Cancel(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&booking.Booking{}).
		Where("id = ?", id).
		Update("is_cancelled", true).Error
}

func (r *BookingRepo) List(ctx context.Context, q *booking.ListBookingsQuery) ([]*booking.Booking, error) {
	qb := r.db.WithContext(ctx).Model(&booking.Booking{})

	if q.PatientID != 0 {
		qb = qb.Where("patient_id = ?", q.PatientID)
	}
	if q.ExcludeCancelled {
		qb = qb.Where("NOT is_cancelled")
	}
	if q.StartAfter != nil {
		qb = qb.Where("start_time > ?", *q.StartAfter)
	}

	var out []*booking.Booking
	if err := qb.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindOverlapping pushes the half-open interval predicate into the store
// so only the candidate set for one patient or one doctor is fetched.
func (r *BookingRepo) FindOverlapping(ctx context.Context, q *booking.OverlapQuery) ([]*booking.Booking, error) {
	qb := r.db.WithContext(ctx).Model(&booking.Booking{}).
		Where("NOT is_cancelled").
		Where("start_time < ? AND end_time > ?", q.End, q.Start)

	if q.PatientID != 0 {
		qb = qb.Where("patient_id = ?", q.PatientID)
	} else {
		qb = qb.Where("doctor_id = ?", q.DoctorID)
	}

	var out []*booking.Booking
	if err := qb.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

package booking

import (
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/clinic"
	"github.com/google/uuid"
)

// Booking reserves one doctor and one patient for a half-open time
// interval [StartTime, EndTime). A booking is never deleted; cancellation
// flips IsCancelled and is monotonic.
type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	PatientID int64 `gorm:"column:patient_id;not null;index"`
	DoctorID  int64 `gorm:"column:doctor_id;not null;index"`

	StartTime time.Time `gorm:"column:start_time;not null;index"`
	EndTime   time.Time `gorm:"column:end_time;not null"`

	// SurgeryType is copied from the patient's clinic when the booking is
	// created. It is a snapshot: if the patient later moves clinic, existing
	// bookings keep the value they were created with.
	SurgeryType clinic.SurgeryType `gorm:"column:surgery_type;type:varchar(30);not null"`

	IsCancelled bool `gorm:"column:is_cancelled;not null;default:false;index"`
}

func (Booking) TableName() string {
	return "clinical.bookings"
}

// Overlaps reports whether the booking's interval intersects [start, end)
// under half-open semantics: a booking ending exactly when another starts
// does not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.EndTime) && b.StartTime.Before(end)
}

func (b *Booking) Cancel() {
	b.IsCancelled = true
}

// AddBookingRequest is the proposed booking a caller submits. ID is
// assigned by the caller-facing layer, not by the store.
type AddBookingRequest struct {
	ID        uuid.UUID
	PatientID int64
	DoctorID  int64
	StartTime time.Time
	EndTime   time.Time
}

// ListBookingsQuery filters the booking set. All predicates are optional
// and AND-combined; PatientID of zero means no patient filter. StartAfter
// is set by the service layer when past-due bookings are excluded.
type ListBookingsQuery struct {
	PatientID        int64
	ExcludeCancelled bool
	StartAfter       *time.Time
}

// OverlapQuery selects the candidate set for a conflict check: all
// non-cancelled bookings of one patient or one doctor whose interval
// intersects [Start, End).
type OverlapQuery struct {
	PatientID int64 // exactly one of PatientID / DoctorID is non-zero
	DoctorID  int64
	Start     time.Time
	End       time.Time
}

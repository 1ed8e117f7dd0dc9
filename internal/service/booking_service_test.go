package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/booking"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/clinic"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/pkg/clock"
)

type serviceFixture struct {
	svc       *BookingService
	bookings  *fakeBookingRepo
	now       time.Time
	patientID int64
	doctorID  int64
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	clk := clock.Fixed{At: now}

	clinics := newFakeClinicRepo()
	cl := clinics.add(&clinic.Clinic{Name: "Harley Street Dental", SurgeryType: clinic.SurgeryDental})

	patients := newFakePatientRepo()
	p := patients.add(&patient.Patient{
		FirstName: "Ada",
		LastName:  "Byron",
		Email:     "ada@example.com",
		ClinicID:  cl.ID,
		Clinic:    cl,
	})

	doctors := newFakeDoctorRepo()
	d := doctors.add(&doctor.Doctor{FirstName: "Gregory", LastName: "House", Email: "house@example.com"})

	bookings := newFakeBookingRepo()
	validator := NewBookingValidator(bookings, patients, doctors, clk, testPrepWindow)
	auditSvc := NewAuditService(&fakeAuditRepo{}, zap.NewNop(), testCollector)
	t.Cleanup(auditSvc.Shutdown)

	return &serviceFixture{
		svc:       NewBookingService(bookings, patients, validator, clk, auditSvc, testCollector, zap.NewNop()),
		bookings:  bookings,
		now:       now,
		patientID: p.ID,
		doctorID:  d.ID,
	}
}

func (f *serviceFixture) addRequest(start, end time.Time) *booking.AddBookingRequest {
	return &booking.AddBookingRequest{
		ID:        uuid.New(),
		PatientID: f.patientID,
		DoctorID:  f.doctorID,
		StartTime: start,
		EndTime:   end,
	}
}

func TestAddBookingPersistsClinicSnapshot(t *testing.T) {
	f := newServiceFixture(t)
	req := f.addRequest(f.now.Add(2*time.Hour), f.now.Add(3*time.Hour))

	b, err := f.svc.AddBooking(context.Background(), req, "10.0.0.1")
	if err != nil {
		t.Fatalf("AddBooking failed: %v", err)
	}

	if b.ID != req.ID {
		t.Errorf("booking id = %s, want the caller-assigned %s", b.ID, req.ID)
	}
	if b.IsCancelled {
		t.Error("new booking must not be cancelled")
	}
	if b.SurgeryType != clinic.SurgeryDental {
		t.Errorf("surgery type = %q, want the patient's clinic type %q", b.SurgeryType, clinic.SurgeryDental)
	}

	stored, err := f.bookings.GetByID(context.Background(), req.ID)
	if err != nil {
		t.Fatalf("booking was not persisted: %v", err)
	}
	if stored.SurgeryType != clinic.SurgeryDental {
		t.Errorf("persisted surgery type = %q, want %q", stored.SurgeryType, clinic.SurgeryDental)
	}
}

func TestAddBookingValidationFailure(t *testing.T) {
	f := newServiceFixture(t)
	req := f.addRequest(f.now.Add(2*time.Hour), f.now.Add(3*time.Hour))
	req.PatientID = 0

	_, err := f.svc.AddBooking(context.Background(), req, "10.0.0.1")

	var validErr *ValidationError
	if !errors.As(err, &validErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(validErr.Violations) != 1 || validErr.Violations[0] != "PatientId must be set" {
		t.Errorf("violations = %v", validErr.Violations)
	}

	if _, err := f.bookings.GetByID(context.Background(), req.ID); !errors.Is(err, booking.ErrBookingNotFound) {
		t.Error("rejected booking must not be persisted")
	}
}

// conflictingBookingRepo simulates a concurrent writer winning the slot
// between the validator's read and the insert.
type conflictingBookingRepo struct {
	*fakeBookingRepo
}

func (r *conflictingBookingRepo) Create(context.Context, *booking.Booking) error {
	return booking.ErrBookingConflict
}

func TestAddBookingStoreConflictPassesThrough(t *testing.T) {
	f := newServiceFixture(t)

	racy := &conflictingBookingRepo{f.bookings}
	f.svc.bookings = racy

	req := f.addRequest(f.now.Add(2*time.Hour), f.now.Add(3*time.Hour))
	_, err := f.svc.AddBooking(context.Background(), req, "10.0.0.1")

	if !errors.Is(err, booking.ErrBookingConflict) {
		t.Fatalf("expected ErrBookingConflict, got %v", err)
	}
}

func TestCancelBookingIsIdempotent(t *testing.T) {
	f := newServiceFixture(t)
	req := f.addRequest(f.now.Add(2*time.Hour), f.now.Add(3*time.Hour))

	if _, err := f.svc.AddBooking(context.Background(), req, ""); err != nil {
		t.Fatalf("AddBooking failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := f.svc.CancelBooking(context.Background(), req.ID, ""); err != nil {
			t.Fatalf("cancel attempt %d failed: %v", i+1, err)
		}
	}

	b, err := f.svc.GetBookingByID(context.Background(), req.ID)
	if err != nil {
		t.Fatalf("GetBookingByID failed: %v", err)
	}
	if !b.IsCancelled {
		t.Error("booking should stay cancelled")
	}
}

func TestCancelUnknownBookingIsSilent(t *testing.T) {
	f := newServiceFixture(t)

	if err := f.svc.CancelBooking(context.Background(), uuid.New(), ""); err != nil {
		t.Fatalf("cancelling an unknown booking must not error, got %v", err)
	}
}

func TestGetBookingsFilters(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	req := f.addRequest(f.now.Add(2*time.Hour), f.now.Add(3*time.Hour))
	if _, err := f.svc.AddBooking(ctx, req, ""); err != nil {
		t.Fatalf("AddBooking failed: %v", err)
	}

	// A booking that already started, seeded directly: AddBooking would
	// reject it.
	pastID := uuid.New()
	f.bookings.byID[pastID] = &booking.Booking{
		ID:        pastID,
		PatientID: f.patientID,
		DoctorID:  f.doctorID,
		StartTime: f.now.Add(-2 * time.Hour),
		EndTime:   f.now.Add(-1 * time.Hour),
	}

	t.Run("exclude past due", func(t *testing.T) {
		got, err := f.svc.GetBookings(ctx, &ListBookingsRequest{
			PatientID:      f.patientID,
			ExcludePastDue: true,
		})
		if err != nil {
			t.Fatalf("GetBookings failed: %v", err)
		}
		if len(got) != 1 || got[0].ID != req.ID {
			t.Errorf("expected only the upcoming booking, got %d bookings", len(got))
		}
	})

	t.Run("exclude cancelled drops the only match", func(t *testing.T) {
		if err := f.svc.CancelBooking(ctx, req.ID, ""); err != nil {
			t.Fatalf("CancelBooking failed: %v", err)
		}

		got, err := f.svc.GetBookings(ctx, &ListBookingsRequest{
			PatientID:        f.patientID,
			ExcludeCancelled: true,
			ExcludePastDue:   true,
		})
		if err != nil {
			t.Fatalf("GetBookings failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no bookings, got %d", len(got))
		}
	})
}

func TestGetBookingByIDNotFound(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.svc.GetBookingByID(context.Background(), uuid.New())
	if !errors.Is(err, booking.ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/booking"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/pkg/clock"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/pkg/metrics"
)

// ListBookingsRequest filters GetBookings. The three predicates are
// independent and AND-combined; a zero PatientID means no patient filter.
type ListBookingsRequest struct {
	PatientID        int64
	ExcludeCancelled bool
	ExcludePastDue   bool
}

type BookingService struct {
	bookings  booking.Repository
	patients  patient.Repository
	validator *BookingValidator
	clock     clock.Clock
	auditSvc  *AuditService
	collector *metrics.Collector
	log       *zap.Logger
}

func NewBookingService(
	bookings booking.Repository,
	patients patient.Repository,
	validator *BookingValidator,
	clk clock.Clock,
	auditSvc *AuditService,
	collector *metrics.Collector,
	log *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		patients:  patients,
		validator: validator,
		clock:     clk,
		auditSvc:  auditSvc,
		collector: collector,
		log:       log,
	}
}

// AddBooking validates the proposed booking and persists it. Validation
// failures come back as *ValidationError; store failures pass through
// wrapped.
func (s *BookingService) AddBooking(ctx context.Context, req *booking.AddBookingRequest, ip string) (*booking.Booking, error) {
	result, err := s.validator.Validate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("validating booking request: %w", err)
	}
	if !result.Passed() {
		s.collector.ValidationFailures.WithLabelValues(result.FailedStage).Inc()
		return nil, &ValidationError{Violations: result.Violations}
	}

	// The validator already confirmed the patient exists; this second read
	// fetches the clinic so its surgery type can be snapshotted onto the
	// booking. The two reads stay separate on purpose: existence checking
	// and data denormalization are different concerns with different query
	// shapes.
	p, err := s.patients.GetWithClinic(ctx, req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("loading patient clinic: %w", err)
	}
	if p.Clinic == nil {
		return nil, fmt.Errorf("patient %d has no clinic", req.PatientID)
	}

	b := &booking.Booking{
		ID:          req.ID,
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		SurgeryType: p.Clinic.SurgeryType,
		IsCancelled: false,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if errors.Is(err, booking.ErrBookingConflict) {
			// A concurrent writer took the slot between the validator's
			// read and our write; the store-level guard caught it.
			s.collector.BookingConflictsTotal.Inc()
			return nil, err
		}
		s.log.Error("failed to create booking", zap.Error(err))
		return nil, fmt.Errorf("creating booking: %w", err)
	}

	s.collector.BookingsCreatedTotal.Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "create",
		ResourceType: "booking",
		ResourceID:   b.ID.String(),
		IPAddress:    ip,
	})

	return b, nil
}

// CancelBooking flags the booking as cancelled. Cancelling an unknown
// booking succeeds silently, and repeat cancels are idempotent no-ops;
// callers that need a definite answer should look the booking up first.
func (s *BookingService) CancelBooking(ctx context.Context, id uuid.UUID, ip string) error {
	if err := s.bookings.Cancel(ctx, id); err != nil {
		return fmt.Errorf("cancelling booking: %w", err)
	}

	s.collector.BookingsCancelledTotal.Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "cancel",
		ResourceType: "booking",
		ResourceID:   id.String(),
		IPAddress:    ip,
	})

	return nil
}

// GetBookings lists bookings matching the filter. Order is unspecified;
// callers that need "next appointment" sort by ascending start time
// themselves.
func (s *BookingService) GetBookings(ctx context.Context, req *ListBookingsRequest) ([]*booking.Booking, error) {
	q := &booking.ListBookingsQuery{
		PatientID:        req.PatientID,
		ExcludeCancelled: req.ExcludeCancelled,
	}
	if req.ExcludePastDue {
		now := s.clock.Now()
		q.StartAfter = &now
	}

	out, err := s.bookings.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	return out, nil
}

// GetBookingByID returns the booking or booking.ErrBookingNotFound. No
// filtering is applied: cancelled and past bookings resolve normally.
func (s *BookingService) GetBookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

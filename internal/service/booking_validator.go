package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/booking"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/pkg/clock"
)

const (
	msgEndBeforeStart = "end date should be greater than start date"
	msgBookingInPast  = "cannot create booking in the past"
	msgPrepWindow     = "doctor requires additional preparation time"
	msgPatientBooked  = "the patient already has an appointment for this time interval"
	msgDoctorBooked   = "the doctor already has an appointment for this time interval"
)

func msgMustBeSet(field string) string {
	return field + " must be set"
}

func msgDoesNotExist(kind string, id int64) string {
	return fmt.Sprintf("%s with ID = %d does not exist", kind, id)
}

// ValidationResult is the verdict for one proposed booking: it passes iff
// no stage produced a violation. FailedStage names the stage that stopped
// the pipeline, for metrics.
type ValidationResult struct {
	Violations  []string
	FailedStage string
}

func (r *ValidationResult) Passed() bool {
	return len(r.Violations) == 0
}

// BookingValidator decides whether a proposed booking is legal given the
// current booking set, the referenced identities, and the injected clock.
//
// Validation runs as a pipeline of stages. Within a stage every applicable
// violation is collected; between stages the first failure short-circuits,
// because later stages presuppose the earlier ones (an overlap check is
// meaningless for a doctor that does not exist, and needs a sane time
// window to compare against).
type BookingValidator struct {
	bookings   booking.Repository
	patients   patient.Repository
	doctors    doctor.Repository
	clock      clock.Clock
	prepWindow time.Duration
}

func NewBookingValidator(
	bookings booking.Repository,
	patients patient.Repository,
	doctors doctor.Repository,
	clk clock.Clock,
	prepWindow time.Duration,
) *BookingValidator {
	return &BookingValidator{
		bookings:   bookings,
		patients:   patients,
		doctors:    doctors,
		clock:      clk,
		prepWindow: prepWindow,
	}
}

type validationStage func(ctx context.Context, req *booking.AddBookingRequest) ([]string, error)

// Validate is a pure function of (request, store snapshot, clock). The
// second return value reports infrastructure failures only; rule
// violations always come back inside the result.
func (v *BookingValidator) Validate(ctx context.Context, req *booking.AddBookingRequest) (*ValidationResult, error) {
	stages := []struct {
		name string
		run  validationStage
	}{
		{"required_fields", v.requiredFields},
		{"related_entities", v.relatedEntities},
		{"time_window", v.timeWindow},
		{"patient_overlap", v.patientOverlap},
		{"doctor_overlap", v.doctorOverlap},
	}

	for _, stage := range stages {
		violations, err := stage.run(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("running %s check: %w", stage.name, err)
		}
		if len(violations) > 0 {
			return &ValidationResult{Violations: violations, FailedStage: stage.name}, nil
		}
	}

	return &ValidationResult{}, nil
}

// requiredFields rejects zero-valued identifiers and timestamps, reporting
// every missing field at once.
func (v *BookingValidator) requiredFields(_ context.Context, req *booking.AddBookingRequest) ([]string, error) {
	var violations []string

	if req.PatientID == 0 {
		violations = append(violations, msgMustBeSet("PatientId"))
	}
	if req.DoctorID == 0 {
		violations = append(violations, msgMustBeSet("DoctorId"))
	}
	if req.StartTime.IsZero() {
		violations = append(violations, msgMustBeSet("StartTime"))
	}
	if req.EndTime.IsZero() {
		violations = append(violations, msgMustBeSet("EndTime"))
	}

	return violations, nil
}

// relatedEntities confirms both referenced identities exist. Both lookups
// are always attempted so that two missing references surface together.
func (v *BookingValidator) relatedEntities(ctx context.Context, req *booking.AddBookingRequest) ([]string, error) {
	var violations []string

	if _, err := v.patients.GetByID(ctx, req.PatientID); err != nil {
		if !errors.Is(err, patient.ErrPatientNotFound) {
			return nil, fmt.Errorf("looking up patient %d: %w", req.PatientID, err)
		}
		violations = append(violations, msgDoesNotExist("Patient", req.PatientID))
	}

	if _, err := v.doctors.GetByID(ctx, req.DoctorID); err != nil {
		if !errors.Is(err, doctor.ErrDoctorNotFound) {
			return nil, fmt.Errorf("looking up doctor %d: %w", req.DoctorID, err)
		}
		violations = append(violations, msgDoesNotExist("Doctor", req.DoctorID))
	}

	return violations, nil
}

// timeWindow checks the interval against the clock. The past check and the
// preparation-window check are independent rules; a start time inside the
// next few minutes trips the preparation rule even though it is in the
// future.
func (v *BookingValidator) timeWindow(_ context.Context, req *booking.AddBookingRequest) ([]string, error) {
	now := v.clock.Now()

	var violations []string

	if !req.EndTime.After(req.StartTime) {
		violations = append(violations, msgEndBeforeStart)
	}
	if !req.StartTime.After(now) {
		violations = append(violations, msgBookingInPast)
	}
	if !req.StartTime.After(now.Add(v.prepWindow)) {
		violations = append(violations, msgPrepWindow)
	}

	return violations, nil
}

// patientOverlap looks for a non-cancelled booking of the same patient
// whose half-open interval intersects the request. Abutting intervals do
// not conflict.
func (v *BookingValidator) patientOverlap(ctx context.Context, req *booking.AddBookingRequest) ([]string, error) {
	overlapping, err := v.bookings.FindOverlapping(ctx, &booking.OverlapQuery{
		PatientID: req.PatientID,
		Start:     req.StartTime,
		End:       req.EndTime,
	})
	if err != nil {
		return nil, fmt.Errorf("querying patient bookings: %w", err)
	}
	if len(overlapping) > 0 {
		return []string{msgPatientBooked}, nil
	}
	return nil, nil
}

func (v *BookingValidator) doctorOverlap(ctx context.Context, req *booking.AddBookingRequest) ([]string, error) {
	overlapping, err := v.bookings.FindOverlapping(ctx, &booking.OverlapQuery{
		DoctorID: req.DoctorID,
		Start:    req.StartTime,
		End:      req.EndTime,
	})
	if err != nil {
		return nil, fmt.Errorf("querying doctor bookings: %w", err)
	}
	if len(overlapping) > 0 {
		return []string{msgDoctorBooked}, nil
	}
	return nil, nil
}

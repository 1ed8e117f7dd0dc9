package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/clinic"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/patient"
)

const (
	msgInvalidEmail = "please provide a valid email address"
)

var emailPattern = regexp.MustCompile(`[\w\.\+-]*[a-zA-Z0-9_]@[\w\.-]*[a-zA-Z0-9]\.[a-zA-Z][a-zA-Z\.]*[a-zA-Z]`)

func msgMustBePopulated(field string) string {
	return field + " must be populated"
}

type PatientService struct {
	repo     patient.Repository
	clinics  clinic.Repository
	auditSvc *AuditService
	log      *zap.Logger
}

func NewPatientService(repo patient.Repository, clinics clinic.Repository, auditSvc *AuditService, log *zap.Logger) *PatientService {
	return &PatientService{repo: repo, clinics: clinics, auditSvc: auditSvc, log: log}
}

// CreatePatient registers a patient after onboarding validation: batched
// required-field checks first, then a duplicate-email check, then a clinic
// existence check. Each later check presupposes the earlier ones passed.
func (s *PatientService) CreatePatient(ctx context.Context, cmd *patient.CreatePatientCommand, ip string) (*patient.Patient, error) {
	if violations := requiredPersonFields(cmd.FirstName, cmd.LastName, cmd.Email); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	email := strings.ToLower(strings.TrimSpace(cmd.Email))

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("checking email uniqueness: %w", err)
	}
	if exists {
		return nil, &ValidationError{Violations: []string{patient.ErrPatientAlreadyExists.Error()}}
	}

	if _, err := s.clinics.GetByID(ctx, cmd.ClinicID); err != nil {
		if errors.Is(err, clinic.ErrClinicNotFound) {
			return nil, &ValidationError{Violations: []string{msgDoesNotExist("Clinic", cmd.ClinicID)}}
		}
		return nil, fmt.Errorf("looking up clinic %d: %w", cmd.ClinicID, err)
	}

	gender := cmd.Gender
	if gender == "" {
		gender = patient.GenderUnknown
	}

	p := &patient.Patient{
		FirstName:   strings.TrimSpace(cmd.FirstName),
		LastName:    strings.TrimSpace(cmd.LastName),
		Email:       email,
		Gender:      gender,
		DateOfBirth: cmd.DateOfBirth,
		ClinicID:    cmd.ClinicID,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("failed to create patient", zap.Error(err))
		return nil, fmt.Errorf("creating patient: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "create",
		ResourceType: "patient",
		ResourceID:   fmt.Sprintf("%d", p.ID),
		IPAddress:    ip,
	})

	return p, nil
}

func (s *PatientService) GetPatient(ctx context.Context, id int64) (*patient.Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PatientService) ListPatients(ctx context.Context) ([]*patient.Patient, error) {
	return s.repo.List(ctx)
}

// requiredPersonFields batches the onboarding field checks shared by
// patients and doctors.
func requiredPersonFields(firstName, lastName, email string) []string {
	var violations []string

	if strings.TrimSpace(firstName) == "" {
		violations = append(violations, msgMustBePopulated("FirstName"))
	}
	if strings.TrimSpace(lastName) == "" {
		violations = append(violations, msgMustBePopulated("LastName"))
	}
	if strings.TrimSpace(email) == "" {
		violations = append(violations, msgMustBePopulated("Email"))
	} else if !emailPattern.MatchString(email) {
		violations = append(violations, msgInvalidEmail)
	}

	return violations
}

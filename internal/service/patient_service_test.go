package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/clinic"
	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/patient"
)

func newPatientService(t *testing.T) (*PatientService, *fakePatientRepo, *fakeClinicRepo) {
	t.Helper()

	patients := newFakePatientRepo()
	clinics := newFakeClinicRepo()
	auditSvc := NewAuditService(&fakeAuditRepo{}, zap.NewNop(), testCollector)
	t.Cleanup(auditSvc.Shutdown)

	return NewPatientService(patients, clinics, auditSvc, zap.NewNop()), patients, clinics
}

func TestCreatePatientRequiredFieldsAreBatched(t *testing.T) {
	svc, _, _ := newPatientService(t)

	tests := []struct {
		name string
		cmd  patient.CreatePatientCommand
		want []string
	}{
		{
			name: "all fields missing",
			cmd:  patient.CreatePatientCommand{},
			want: []string{
				"FirstName must be populated",
				"LastName must be populated",
				"Email must be populated",
			},
		},
		{
			name: "whitespace counts as missing",
			cmd:  patient.CreatePatientCommand{FirstName: "  ", LastName: "Byron", Email: "ada@example.com"},
			want: []string{"FirstName must be populated"},
		},
		{
			name: "malformed email",
			cmd:  patient.CreatePatientCommand{FirstName: "Ada", LastName: "Byron", Email: "not-an-email"},
			want: []string{"please provide a valid email address"},
		},
		{
			name: "email missing tld",
			cmd:  patient.CreatePatientCommand{FirstName: "Ada", LastName: "Byron", Email: "ada@example"},
			want: []string{"please provide a valid email address"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreatePatient(context.Background(), &tc.cmd, "")

			var validErr *ValidationError
			if !errors.As(err, &validErr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if len(validErr.Violations) != len(tc.want) {
				t.Fatalf("violations = %v, want %v", validErr.Violations, tc.want)
			}
			for i := range tc.want {
				if validErr.Violations[i] != tc.want[i] {
					t.Errorf("violation[%d] = %q, want %q", i, validErr.Violations[i], tc.want[i])
				}
			}
		})
	}
}

func TestCreatePatientDuplicateEmail(t *testing.T) {
	svc, patients, clinics := newPatientService(t)
	cl := clinics.add(&clinic.Clinic{Name: "Harley Street Dental", SurgeryType: clinic.SurgeryDental})
	patients.add(&patient.Patient{FirstName: "Ada", LastName: "Byron", Email: "ada@example.com", ClinicID: cl.ID})

	// Case and surrounding whitespace must not defeat the check.
	cmd := &patient.CreatePatientCommand{
		FirstName: "Augusta",
		LastName:  "King",
		Email:     "  ADA@example.com ",
		ClinicID:  cl.ID,
	}

	_, err := svc.CreatePatient(context.Background(), cmd, "")

	var validErr *ValidationError
	if !errors.As(err, &validErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if want := patient.ErrPatientAlreadyExists.Error(); len(validErr.Violations) != 1 || validErr.Violations[0] != want {
		t.Errorf("violations = %v, want [%q]", validErr.Violations, want)
	}
}

func TestCreatePatientUnknownClinic(t *testing.T) {
	svc, _, _ := newPatientService(t)

	cmd := &patient.CreatePatientCommand{
		FirstName: "Ada",
		LastName:  "Byron",
		Email:     "ada@example.com",
		ClinicID:  42,
	}

	_, err := svc.CreatePatient(context.Background(), cmd, "")

	var validErr *ValidationError
	if !errors.As(err, &validErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if want := "Clinic with ID = 42 does not exist"; len(validErr.Violations) != 1 || validErr.Violations[0] != want {
		t.Errorf("violations = %v, want [%q]", validErr.Violations, want)
	}
}

func TestCreatePatientNormalizesAndPersists(t *testing.T) {
	svc, patients, clinics := newPatientService(t)
	cl := clinics.add(&clinic.Clinic{Name: "Harley Street Dental", SurgeryType: clinic.SurgeryDental})

	cmd := &patient.CreatePatientCommand{
		FirstName: " Ada ",
		LastName:  " Byron ",
		Email:     " Ada.Byron@Example.COM ",
		ClinicID:  cl.ID,
	}

	p, err := svc.CreatePatient(context.Background(), cmd, "10.0.0.1")
	if err != nil {
		t.Fatalf("CreatePatient failed: %v", err)
	}

	if p.Email != "ada.byron@example.com" {
		t.Errorf("email = %q, want lowercased trimmed form", p.Email)
	}
	if p.FirstName != "Ada" || p.LastName != "Byron" {
		t.Errorf("name = %q %q, want trimmed", p.FirstName, p.LastName)
	}
	if p.Gender != patient.GenderUnknown {
		t.Errorf("gender = %q, want default %q", p.Gender, patient.GenderUnknown)
	}

	stored, err := patients.GetByID(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("patient was not persisted: %v", err)
	}
	if stored.ClinicID != cl.ID {
		t.Errorf("clinic id = %d, want %d", stored.ClinicID, cl.ID)
	}
}

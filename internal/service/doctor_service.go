package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/doctor"
)

type DoctorService struct {
	repo     doctor.Repository
	auditSvc *AuditService
	log      *zap.Logger
}

func NewDoctorService(repo doctor.Repository, auditSvc *AuditService, log *zap.Logger) *DoctorService {
	return &DoctorService{repo: repo, auditSvc: auditSvc, log: log}
}

func (s *DoctorService) CreateDoctor(ctx context.Context, cmd *doctor.CreateDoctorCommand, ip string) (*doctor.Doctor, error) {
	if violations := requiredPersonFields(cmd.FirstName, cmd.LastName, cmd.Email); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	email := strings.ToLower(strings.TrimSpace(cmd.Email))

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("checking email uniqueness: %w", err)
	}
	if exists {
		return nil, &ValidationError{Violations: []string{doctor.ErrDoctorAlreadyExists.Error()}}
	}

	d := &doctor.Doctor{
		FirstName:   strings.TrimSpace(cmd.FirstName),
		LastName:    strings.TrimSpace(cmd.LastName),
		Email:       email,
		DateOfBirth: cmd.DateOfBirth,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.log.Error("failed to create doctor", zap.Error(err))
		return nil, fmt.Errorf("creating doctor: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "create",
		ResourceType: "doctor",
		ResourceID:   fmt.Sprintf("%d", d.ID),
		IPAddress:    ip,
	})

	return d, nil
}

func (s *DoctorService) GetDoctor(ctx context.Context, id int64) (*doctor.Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DoctorService) ListDoctors(ctx context.Context) ([]*doctor.Doctor, error) {
	return s.repo.List(ctx)
}

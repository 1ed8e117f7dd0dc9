package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/clinic"
)

type ClinicService struct {
	repo clinic.Repository
	log  *zap.Logger
}

func NewClinicService(repo clinic.Repository, log *zap.Logger) *ClinicService {
	return &ClinicService{repo: repo, log: log}
}

func (s *ClinicService) CreateClinic(ctx context.Context, cmd *clinic.CreateClinicCommand) (*clinic.Clinic, error) {
	var violations []string
	if strings.TrimSpace(cmd.Name) == "" {
		violations = append(violations, msgMustBePopulated("Name"))
	}
	if !cmd.SurgeryType.IsValid() {
		violations = append(violations, clinic.ErrInvalidSurgeryType.Error())
	}
	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	c := &clinic.Clinic{
		Name:        strings.TrimSpace(cmd.Name),
		SurgeryType: cmd.SurgeryType,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.log.Error("failed to create clinic", zap.Error(err))
		return nil, fmt.Errorf("creating clinic: %w", err)
	}

	return c, nil
}

func (s *ClinicService) GetClinic(ctx context.Context, id int64) (*clinic.Clinic, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ClinicService) ListClinics(ctx context.Context) ([]*clinic.Clinic, error) {
	return s.repo.List(ctx)
}

package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/patient"
)

type PatientRepo struct {
	db *gorm.DB
}

func NewPatientRepo(db *gorm.DB) *PatientRepo {
	return &PatientRepo{db: db}
}

func (r *PatientRepo) Create(ctx context.Context, p *patient.Patient) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return patient.ErrPatientAlreadyExists
		}
		return err
	}
	return nil
}

func (r *PatientRepo) GetByID(ctx context.Context, id int64) (*patient.Patient, error) {
	var p patient.Patient
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, patient.ErrPatientNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepo) GetWithClinic(ctx context.Context, id int64) (*patient.Patient, error) {
	var p patient.Patient
	if err := r.db.WithContext(ctx).Preload("Clinic").First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, patient.ErrPatientNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&patient.Patient{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *PatientRepo) List(ctx context.Context) ([]*patient.Patient, error) {
	var out []*patient.Patient
	if err := r.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

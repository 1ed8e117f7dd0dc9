package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/clinic"
)

type ClinicRepo struct {
	db *gorm.DB
}

func NewClinicRepo(db *gorm.DB) *ClinicRepo {
	return &ClinicRepo{db: db}
}

func (r *ClinicRepo) Create(ctx context.Context, c *clinic.Clinic) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClinicRepo) GetByID(ctx context.Context, id int64) (*clinic.Clinic, error) {
	var c clinic.Clinic
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, clinic.ErrClinicNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClinicRepo) List(ctx context.Context) ([]*clinic.Clinic, error) {
	var out []*clinic.Clinic
	if err := r.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/doctor"
)

type DoctorRepo struct {
	db *gorm.DB
}

func NewDoctorRepo(db *gorm.DB) *DoctorRepo {
	return &DoctorRepo{db: db}
}

func (r *DoctorRepo) Create(ctx context.Context, d *doctor.Doctor) error {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return doctor.ErrDoctorAlreadyExists
		}
		return err
	}
	return nil
}

func (r *DoctorRepo) GetByID(ctx context.Context, id int64) (*doctor.Doctor, error) {
	var d doctor.Doctor
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, doctor.ErrDoctorNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DoctorRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&doctor.Doctor{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *DoctorRepo) List(ctx context.Context) ([]*doctor.Doctor, error) {
	var out []*doctor.Doctor
	if err := r.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

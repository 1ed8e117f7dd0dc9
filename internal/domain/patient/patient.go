package patient

import (
	"strings"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicbook/internal/domain/clinic"
)

type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
	GenderUnknown Gender = "unknown"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderUnknown:
		return true
	}
	return false
}

type Patient struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	FirstName   string    `gorm:"column:first_name;type:varchar(100);not null"`
	LastName    string    `gorm:"column:last_name;type:varchar(100);not null"`
	Email       string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	Gender      Gender    `gorm:"column:gender;type:varchar(20);not null"`
	DateOfBirth time.Time `gorm:"column:date_of_birth;not null"`

	ClinicID int64          `gorm:"column:clinic_id;not null;index"`
	Clinic   *clinic.Clinic `gorm:"foreignKey:ClinicID"`
}

func (Patient) TableName() string {
	return "clinical.patients"
}

func (p *Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

type CreatePatientCommand struct {
	FirstName   string
	LastName    string
	Email       string
	Gender      Gender
	DateOfBirth time.Time
	ClinicID    int64
}

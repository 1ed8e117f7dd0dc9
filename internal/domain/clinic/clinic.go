package clinic

import "time"

// SurgeryType categorizes the kind of practice a clinic runs. It is
// denormalized onto bookings at creation time.
type SurgeryType string

const (
	SurgeryGeneral    SurgeryType = "general"
	SurgeryDental     SurgeryType = "dental"
	SurgeryOrthopedic SurgeryType = "orthopedic"
	SurgeryCardiology SurgeryType = "cardiology"
)

func (t SurgeryType) IsValid() bool {
	switch t {
	case SurgeryGeneral, SurgeryDental, SurgeryOrthopedic, SurgeryCardiology:
		return true
	}
	return false
}

type Clinic struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Name        string      `gorm:"column:name;type:varchar(255);not null"`
	SurgeryType SurgeryType `gorm:"column:surgery_type;type:varchar(30);not null"`
}

func (Clinic) TableName() string {
	return "clinical.clinics"
}

type CreateClinicCommand struct {
	Name        string
	SurgeryType SurgeryType
}

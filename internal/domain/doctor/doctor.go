package doctor

import (
	"strings"
	"time"
)

type Doctor struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	FirstName   string    `gorm:"column:first_name;type:varchar(100);not null"`
	LastName    string    `gorm:"column:last_name;type:varchar(100);not null"`
	Email       string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	DateOfBirth time.Time `gorm:"column:date_of_birth"`
}

func (Doctor) TableName() string {
	return "clinical.doctors"
}

func (d *Doctor) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

type CreateDoctorCommand struct {
	FirstName   string
	LastName    string
	Email       string
	DateOfBirth time.Time
}

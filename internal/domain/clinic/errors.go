package clinic

import "errors"

var (
	ErrClinicNotFound     = errors.New("clinic not found")
	ErrInvalidSurgeryType = errors.New("invalid surgery type")
)

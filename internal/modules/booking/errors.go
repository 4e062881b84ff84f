package booking

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrNotAvailable    = errors.New("vehicle not available")
	ErrNotFound        = errors.New("booking not found")
)

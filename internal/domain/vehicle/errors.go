package vehicle

import "errors"

var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrPlateRequired   = errors.New("plate is required")
	ErrInvalidStatus   = errors.New("invalid vehicle status")
)

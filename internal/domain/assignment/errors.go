package assignment

import "errors"

var (
	ErrDriverRequired        = errors.New("driver id is required")
	ErrVehicleRequired       = errors.New("vehicle id is required")
	ErrDriverAlreadyAssigned = errors.New("driver already has a vehicle")
	ErrVehicleUnavailable    = errors.New("vehicle is not available")
)

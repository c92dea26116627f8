package fine

import "errors"

var (
	ErrFineNotFound   = errors.New("fine not found")
	ErrDateRequired   = errors.New("infraction date is required")
	ErrPlaceRequired  = errors.New("place is required")
	ErrPlateRequired  = errors.New("vehicle plate is required")
	ErrNatureRequired = errors.New("nature of infraction is required")
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrUnknownDriver  = errors.New("referenced driver not found")
)

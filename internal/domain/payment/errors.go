package payment

import "errors"

var (
	ErrReceiptNotFound = errors.New("payment receipt not found")
	ErrImageRequired   = errors.New("receipt image is required")
	ErrLinkRequired    = errors.New("a driver or a vehicle link is required")
	ErrNotAnImage      = errors.New("file is not an image")
	ErrUnknownDriver   = errors.New("referenced driver not found")
	ErrUnknownVehicle  = errors.New("referenced vehicle not found")
)

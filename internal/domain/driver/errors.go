package driver

import "errors"

var (
	ErrDriverNotFound   = errors.New("driver not found")
	ErrNameRequired     = errors.New("first and last name are required")
	ErrInvalidStatus    = errors.New("invalid driver status")
	ErrInvalidPhotoKind = errors.New("invalid photo kind")
	ErrNotAnImage       = errors.New("file is not an image")
)

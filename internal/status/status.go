package status

import "errors"

var (
	ErrValidation         = errors.New("validation: missing or invalid field")
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrLoginRequired      = errors.New("auth: login required")
	ErrForbidden          = errors.New("auth: permission denied")
)

var (
	ErrNotFound             = errors.New("market: not found")
	ErrInsufficientQuantity = errors.New("market: not enough tickets available")
	ErrOwnListing           = errors.New("market: sellers cannot buy their own listing")
)

var (
	ErrFileTooLarge    = errors.New("upload: file exceeds the size limit")
	ErrUnsupportedType = errors.New("upload: unsupported file type")
)

package models

import "errors"

// Domain specific errors for the photo sharing frontend.
var (
	ErrNotFound        = errors.New("requested item not found")
	ErrUnauthenticated = errors.New("authentication required or invalid credentials")
	ErrForbidden       = errors.New("action forbidden")
	ErrBadRequest      = errors.New("bad request")
	ErrValidation      = errors.New("validation failed")
	ErrMissingPhotoID  = errors.New("no photo ID provided")

	ErrFileRequired = errors.New("a file is required")
	ErrNotAnImage   = errors.New("file is not an image")
	ErrFileTooLarge = errors.New("file exceeds the size limit")
)

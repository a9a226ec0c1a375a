package cvs

import "errors"

var (
	ErrNotFound      = errors.New("cv not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrFileTooLarge  = errors.New("file exceeds the 10MB limit")
	ErrInvalidUpload = errors.New("unable to read uploaded cv")
)

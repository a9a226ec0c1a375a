package applications

import "errors"

var (
	ErrNotFound      = errors.New("application not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidStatus = errors.New("invalid status")
	ErrNoFields      = errors.New("no fields to update")
)

package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNavigation   = errors.New("navigation failed")
	ErrInternal     = errors.New("internal error")
)

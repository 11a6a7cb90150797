package usecase

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInsufficientData = errors.New("insufficient data")
	ErrDivisionSync     = errors.New("divisions out of sync")
)

package services

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("order is not in the expected status")
	ErrEmptyOrder      = errors.New("order must have at least one item")
	ErrEmptyReason     = errors.New("refusal reason is required")
	ErrInvalidPrepTime = errors.New("prep time must be 15, 30, 60 or 90 minutes")
	ErrInvalidStatus   = errors.New("unknown order status")
)

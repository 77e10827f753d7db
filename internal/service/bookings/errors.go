package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = errors.New("booking not found")

	// ErrCannotConfirm is returned when the booking is not pending
	ErrCannotConfirm = errors.New("booking cannot be confirmed")

	// ErrCannotCancel is returned when the booking is already terminal
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCannotComplete is returned when the booking is not confirmed
	ErrCannotComplete = errors.New("booking cannot be completed")

	// ErrInvalidInput is returned on malformed filter values
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service errors
	ErrInternal = errors.New("service: internal error")
)

package get_available_slots

import "errors"

var (
	// ErrStaffNotFound is returned when the staff member does not exist or is inactive
	ErrStaffNotFound = errors.New("get_available_slots: staff member not found")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal is returned on internal usecase errors
	ErrInternal = errors.New("get_available_slots: internal error")
)

package create_booking

import (
	"errors"
	"fmt"

	"github.com/villidata/newfork/pkg/types"
)

var (
	// ErrStaffNotFound is returned when the staff member does not exist or is inactive
	ErrStaffNotFound = errors.New("create_booking: staff member not found")

	// ErrServiceNotFound is returned when any requested service does not exist
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInvalidDate is returned for a booking date in the past
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrStaffClosed is returned when the staff member does not work on the
	// requested date, or the booking does not fit the working window
	ErrStaffClosed = errors.New("create_booking: staff member is not available on this date")

	// ErrSlotConflict is returned when the requested interval overlaps an
	// active booking or a break
	ErrSlotConflict = errors.New("create_booking: time slot is not available")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal is returned on internal usecase errors
	ErrInternal = errors.New("create_booking: internal error")
)

// SlotConflictError carries the start time of the interval that blocked
// the request. errors.Is(err, ErrSlotConflict) matches it.
type SlotConflictError struct {
	ConflictingStartTime types.TimeString
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("%v: conflicting start time %s", ErrSlotConflict, e.ConflictingStartTime)
}

func (e *SlotConflictError) Unwrap() error {
	return ErrSlotConflict
}

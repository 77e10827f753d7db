package reschedule_booking

import (
	"errors"
	"fmt"

	"github.com/villidata/newfork/pkg/types"
)

var (
	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrNotReschedulable is returned for cancelled and completed bookings
	ErrNotReschedulable = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrStaffNotFound is returned when the staff member disappeared or is inactive
	ErrStaffNotFound = errors.New("reschedule_booking: staff member not found")

	// ErrInvalidDate is returned for a target date in the past
	ErrInvalidDate = errors.New("reschedule_booking: invalid booking date")

	// ErrStaffClosed is returned when the staff member does not work on the
	// target date, or the booking does not fit the working window
	ErrStaffClosed = errors.New("reschedule_booking: staff member is not available on this date")

	// ErrSlotConflict is returned when the target interval overlaps another
	// active booking or a break
	ErrSlotConflict = errors.New("reschedule_booking: time slot is not available")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal is returned on internal usecase errors
	ErrInternal = errors.New("reschedule_booking: internal error")
)

// SlotConflictError carries the start time of the interval that blocked
// the move. errors.Is(err, ErrSlotConflict) matches it.
type SlotConflictError struct {
	ConflictingStartTime types.TimeString
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("%v: conflicting start time %s", ErrSlotConflict, e.ConflictingStartTime)
}

func (e *SlotConflictError) Unwrap() error {
	return ErrSlotConflict
}

package booking

import "errors"

var (
	// ErrBuildQuery is returned when a query cannot be built
	ErrBuildQuery = errors.New("booking storage: build query")

	// ErrExecQuery is returned when a query fails to execute
	ErrExecQuery = errors.New("booking storage: execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("booking storage: scan row")

	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = errors.New("booking storage: booking not found")

	// ErrStatusConflict is returned when a guarded status update matched
	// no row because the booking left the allowed statuses concurrently
	ErrStatusConflict = errors.New("booking storage: booking status changed concurrently")

	// ErrDuplicateSlot is returned when the partial unique index on
	// (staff_id, booking_date, start_time) rejects a write. It backstops
	// the transactional conflict check under concurrent requests.
	ErrDuplicateSlot = errors.New("booking storage: slot already taken")
)

package domain

// Default configuration values
const (
	DefaultSlotGranularityMinutes = 30
)

// Business validation constants
const (
	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 240
	MaxServicesPerBooking     = 10
	MaxNotesLength            = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses are the statuses that block a time slot
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses never block new bookings
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
}

// ParseBookingStatus validates a status string against the closed set
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// ParseBreakType validates a break type string against the closed set
func ParseBreakType(s string) (BreakType, bool) {
	switch BreakType(s) {
	case BreakTypeBreak, BreakTypeLunch, BreakTypeMeeting, BreakTypeVacation, BreakTypeSick, BreakTypeOther:
		return BreakType(s), true
	default:
		return "", false
	}
}

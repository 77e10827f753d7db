package reschedule_booking

import (
	"time"

	"github.com/villidata/newfork/pkg/types"
)

// Request moves an active booking to a new date and start time. The
// booking's duration and price stay frozen; only the schedule changes.
type Request struct {
	BookingID string           // booking to move
	Date      time.Time        // target date (no time component)
	StartTime types.TimeString // target slot start, e.g. "10:00"
	Confirm   bool             // also confirm a pending booking in the same move
}

// Response is the booking after the move
type Response struct {
	ID                   string           `json:"id"`
	StaffID              string           `json:"staffId"`
	BookingDate          string           `json:"bookingDate"` // "2026-09-15"
	StartTime            types.TimeString `json:"startTime"`
	EndTime              types.TimeString `json:"endTime"`
	TotalDurationMinutes int              `json:"totalDurationMinutes"`
	Status               string           `json:"status"`
}

package get_available_slots

import "time"

// Request is the available-slots query
type Request struct {
	StaffID string    // staff member to check
	Date    time.Time // date to check (no time component)
}

// Response lists the bookable start times for the day. An empty Slots
// with Closed=true means the staff member does not work that day.
type Response struct {
	StaffID string   `json:"staffId"`
	Date    string   `json:"date"`  // "2026-09-15"
	Slots   []string `json:"slots"` // ["09:00", "09:30", ...]
	Closed  bool     `json:"closed"`
}

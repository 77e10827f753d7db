package domain

import (
	"time"

	"github.com/villidata/newfork/pkg/types"
)

// DayWindow is one weekday's working hours for a staff member. A disabled
// or zero-valued window means the staff member does not work that weekday
// (the business-wide default may still apply).
type DayWindow struct {
	Start   types.TimeString
	End     types.TimeString
	Enabled bool
}

// IsUsable returns true if the window is enabled with both bounds present
func (w DayWindow) IsUsable() bool {
	return w.Enabled && !w.Start.IsZero() && !w.End.IsZero()
}

// WeekSchedule maps each weekday to a working window
type WeekSchedule struct {
	Monday    DayWindow
	Tuesday   DayWindow
	Wednesday DayWindow
	Thursday  DayWindow
	Friday    DayWindow
	Saturday  DayWindow
	Sunday    DayWindow
}

// ForWeekday returns the window for the given weekday
func (s WeekSchedule) ForWeekday(d time.Weekday) DayWindow {
	switch d {
	case time.Monday:
		return s.Monday
	case time.Tuesday:
		return s.Tuesday
	case time.Wednesday:
		return s.Wednesday
	case time.Thursday:
		return s.Thursday
	case time.Friday:
		return s.Friday
	case time.Saturday:
		return s.Saturday
	case time.Sunday:
		return s.Sunday
	default:
		return DayWindow{}
	}
}

// SetForWeekday stores the window for the given weekday
func (s *WeekSchedule) SetForWeekday(d time.Weekday, w DayWindow) {
	switch d {
	case time.Monday:
		s.Monday = w
	case time.Tuesday:
		s.Tuesday = w
	case time.Wednesday:
		s.Wednesday = w
	case time.Thursday:
		s.Thursday = w
	case time.Friday:
		s.Friday = w
	case time.Saturday:
		s.Saturday = w
	case time.Sunday:
		s.Sunday = w
	}
}

// Staff represents a bookable staff member with per-weekday overrides of
// the business default hours.
type Staff struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	Specialty      string
	IsActive       bool
	AvailableHours WeekSchedule
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

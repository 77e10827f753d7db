package domain

import (
	"time"

	"github.com/villidata/newfork/pkg/types"
)

// BreakType classifies a staff unavailability interval
type BreakType string

const (
	BreakTypeBreak    BreakType = "break"
	BreakTypeLunch    BreakType = "lunch"
	BreakTypeMeeting  BreakType = "meeting"
	BreakTypeVacation BreakType = "vacation"
	BreakTypeSick     BreakType = "sick"
	BreakTypeOther    BreakType = "other"
)

// StaffBreak is a staff-specific unavailability interval: either a
// concrete [StartDate, EndDate] span, or recurring on a set of weekdays.
// In both forms the daily blocked interval is [StartTime, EndTime).
type StaffBreak struct {
	ID            string
	StaffID       string
	StartDate     time.Time
	EndDate       time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	Type          BreakType
	Reason        string
	IsRecurring   bool
	RecurringDays []time.Weekday
	CreatedBy     string
	CreatedAt     time.Time
}

// AppliesOn returns true if the break blocks time on the given date
func (b *StaffBreak) AppliesOn(date time.Time) bool {
	if b.IsRecurring {
		for _, d := range b.RecurringDays {
			if d == date.Weekday() {
				return true
			}
		}
		return false
	}
	return !dateOnly(date).Before(dateOnly(b.StartDate)) && !dateOnly(date).After(dateOnly(b.EndDate))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

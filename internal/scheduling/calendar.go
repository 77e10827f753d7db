// Package scheduling holds the pure booking-time computations: resolving a
// staff member's working window for a date, collecting the break intervals
// that apply to it, generating candidate slot start times and testing
// interval overlap. Nothing here touches storage or the clock.
package scheduling

import (
	"time"

	"github.com/villidata/newfork/internal/domain"
	"github.com/villidata/newfork/pkg/types"
)

// Window is a [Start, End) working interval within a single day
type Window struct {
	Start types.TimeString
	End   types.TimeString
}

// Calendar resolves effective working windows. The business-wide default
// schedule is injected so tests and deployments can supply their own table.
type Calendar struct {
	defaults domain.WeekSchedule
}

// NewCalendar creates a calendar over the given business default hours
func NewCalendar(defaults domain.WeekSchedule) *Calendar {
	return &Calendar{defaults: defaults}
}

// ResolveWindow returns the staff member's effective working window on the
// given date. The staff's per-weekday override wins when it is enabled
// with both bounds set; otherwise the business default for that weekday
// applies. A closed day returns ok=false, which is a normal zero-slot
// outcome, not a failure.
func (c *Calendar) ResolveWindow(staff *domain.Staff, date time.Time) (Window, bool) {
	weekday := date.Weekday()

	if staff != nil {
		if w := staff.AvailableHours.ForWeekday(weekday); w.IsUsable() {
			return Window{Start: w.Start, End: w.End}, true
		}
	}

	if w := c.defaults.ForWeekday(weekday); w.IsUsable() {
		return Window{Start: w.Start, End: w.End}, true
	}

	return Window{}, false
}

package scheduling

import (
	"time"

	"github.com/villidata/newfork/internal/domain"
	"github.com/villidata/newfork/pkg/types"
)

// Interval is a [Start, End) blocked time-of-day interval
type Interval struct {
	Start  types.TimeString
	End    types.TimeString
	Type   domain.BreakType
	Reason string
}

// BreaksFor returns the daily time intervals blocked by the given breaks
// on the given date: concrete breaks whose date span covers the date, and
// recurring breaks whose weekday list contains the date's weekday.
// Overlapping intervals are returned as-is, not merged; callers test each
// interval independently.
func BreaksFor(breaks []*domain.StaffBreak, date time.Time) []Interval {
	intervals := make([]Interval, 0, len(breaks))
	for _, b := range breaks {
		if b == nil || !b.AppliesOn(date) {
			continue
		}
		intervals = append(intervals, Interval{
			Start:  b.StartTime,
			End:    b.EndTime,
			Type:   b.Type,
			Reason: b.Reason,
		})
	}
	return intervals
}

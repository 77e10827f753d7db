package scheduling

import (
	"github.com/villidata/newfork/internal/domain"
	"github.com/villidata/newfork/pkg/types"
)

// intervalsOverlap applies the half-open interval test: [s1,e1) and
// [s2,e2) overlap iff s1 < e2 and s2 < e1. An interval ending exactly
// where another starts does not overlap.
func intervalsOverlap(s1, e1, s2, e2 types.TimeString) bool {
	return s1.IsBefore(e2) && s2.IsBefore(e1)
}

// ConflictingBooking returns the first existing booking whose interval
// overlaps the candidate [start, start+duration). Bookings must already be
// filtered to the same staff and date; inactive (cancelled/completed)
// bookings are skipped regardless. Returns nil when the candidate is free.
func ConflictingBooking(start types.TimeString, durationMinutes int, bookings []*domain.Booking) (*domain.Booking, error) {
	candidateEnd, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return nil, err
	}

	for _, b := range bookings {
		if b == nil || !b.IsActive() {
			continue
		}
		bookingEnd, err := b.StartTime.AddMinutes(b.TotalDurationMinutes)
		if err != nil {
			// A stored booking whose end cannot be computed cannot block.
			continue
		}
		if intervalsOverlap(start, candidateEnd, b.StartTime, bookingEnd) {
			return b, nil
		}
	}

	return nil, nil
}

// Overlaps reports whether the candidate interval overlaps any active
// booking in the list.
func Overlaps(start types.TimeString, durationMinutes int, bookings []*domain.Booking) (bool, error) {
	conflict, err := ConflictingBooking(start, durationMinutes, bookings)
	if err != nil {
		return false, err
	}
	return conflict != nil, nil
}

// BlockingInterval returns the first break interval overlapping the
// candidate [start, start+duration). Break intervals have no status; they
// always block. Returns ok=false when the candidate is clear of breaks.
func BlockingInterval(start types.TimeString, durationMinutes int, intervals []Interval) (Interval, bool, error) {
	candidateEnd, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return Interval{}, false, err
	}

	for _, iv := range intervals {
		if intervalsOverlap(start, candidateEnd, iv.Start, iv.End) {
			return iv, true, nil
		}
	}

	return Interval{}, false, nil
}

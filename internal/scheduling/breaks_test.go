package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/villidata/newfork/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBreaksFor_ConcreteSpan(t *testing.T) {
	vacation := &domain.StaffBreak{
		ID:        "brk-1",
		StaffID:   "staff-1",
		StartDate: date(2026, 7, 6),
		EndDate:   date(2026, 7, 10),
		StartTime: "09:00",
		EndTime:   "18:00",
		Type:      domain.BreakTypeVacation,
		Reason:    "summer holiday",
	}

	tests := []struct {
		name string
		on   time.Time
		want int
	}{
		{name: "day before span", on: date(2026, 7, 5), want: 0},
		{name: "first day inclusive", on: date(2026, 7, 6), want: 1},
		{name: "middle of span", on: date(2026, 7, 8), want: 1},
		{name: "last day inclusive", on: date(2026, 7, 10), want: 1},
		{name: "day after span", on: date(2026, 7, 11), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BreaksFor([]*domain.StaffBreak{vacation}, tt.on)
			require.Len(t, got, tt.want)
			if tt.want == 1 {
				assert.Equal(t, Interval{Start: "09:00", End: "18:00", Type: domain.BreakTypeVacation, Reason: "summer holiday"}, got[0])
			}
		})
	}
}

func TestBreaksFor_Recurring(t *testing.T) {
	lunch := &domain.StaffBreak{
		ID:            "brk-2",
		StaffID:       "staff-1",
		StartTime:     "12:00",
		EndTime:       "13:00",
		Type:          domain.BreakTypeLunch,
		IsRecurring:   true,
		RecurringDays: []time.Weekday{time.Wednesday},
	}

	wednesday := date(2026, 9, 9)
	require.Equal(t, time.Wednesday, wednesday.Weekday())

	got := BreaksFor([]*domain.StaffBreak{lunch}, wednesday)
	require.Len(t, got, 1)
	assert.Equal(t, Interval{Start: "12:00", End: "13:00", Type: domain.BreakTypeLunch}, got[0])

	// Any other weekday is unaffected, including weeks later.
	assert.Empty(t, BreaksFor([]*domain.StaffBreak{lunch}, wednesday.AddDate(0, 0, 1)))
	assert.Len(t, BreaksFor([]*domain.StaffBreak{lunch}, wednesday.AddDate(0, 0, 14)), 1)
}

func TestBreaksFor_MixedAndUnmerged(t *testing.T) {
	monday := date(2026, 9, 7)
	require.Equal(t, time.Monday, monday.Weekday())

	breaks := []*domain.StaffBreak{
		{
			ID: "concrete", StaffID: "staff-1",
			StartDate: monday, EndDate: monday,
			StartTime: "10:00", EndTime: "11:00",
			Type: domain.BreakTypeMeeting,
		},
		{
			ID: "recurring", StaffID: "staff-1",
			StartTime: "10:30", EndTime: "11:30",
			Type: domain.BreakTypeBreak, IsRecurring: true,
			RecurringDays: []time.Weekday{time.Monday, time.Friday},
		},
		{
			ID: "other-day", StaffID: "staff-1",
			StartDate: monday.AddDate(0, 0, 1), EndDate: monday.AddDate(0, 0, 1),
			StartTime: "09:00", EndTime: "10:00",
			Type: domain.BreakTypeOther,
		},
	}

	got := BreaksFor(breaks, monday)
	// Overlapping intervals are both returned; no merging happens here.
	require.Len(t, got, 2)
	assert.Equal(t, domain.BreakTypeMeeting, got[0].Type)
	assert.Equal(t, domain.BreakTypeBreak, got[1].Type)
}

package config

import (
	"fmt"

	"github.com/villidata/newfork/internal/domain"
	"github.com/villidata/newfork/pkg/types"
)

// ToWeekSchedule converts the configured default hours into the domain
// schedule. A weekday with empty start or end stays disabled (closed).
func (b BusinessHoursConfig) ToWeekSchedule() (domain.WeekSchedule, error) {
	var schedule domain.WeekSchedule

	days := []struct {
		name  string
		hours DayHoursConfig
		set   func(domain.DayWindow)
	}{
		{"monday", b.Monday, func(w domain.DayWindow) { schedule.Monday = w }},
		{"tuesday", b.Tuesday, func(w domain.DayWindow) { schedule.Tuesday = w }},
		{"wednesday", b.Wednesday, func(w domain.DayWindow) { schedule.Wednesday = w }},
		{"thursday", b.Thursday, func(w domain.DayWindow) { schedule.Thursday = w }},
		{"friday", b.Friday, func(w domain.DayWindow) { schedule.Friday = w }},
		{"saturday", b.Saturday, func(w domain.DayWindow) { schedule.Saturday = w }},
		{"sunday", b.Sunday, func(w domain.DayWindow) { schedule.Sunday = w }},
	}

	for _, day := range days {
		if day.hours.Start == "" || day.hours.End == "" {
			continue
		}

		start, err := types.NewTimeStringFromString(day.hours.Start)
		if err != nil {
			return schedule, fmt.Errorf("config: business_hours.%s.start: %w", day.name, err)
		}
		end, err := types.NewTimeStringFromString(day.hours.End)
		if err != nil {
			return schedule, fmt.Errorf("config: business_hours.%s.end: %w", day.name, err)
		}
		if !start.IsBefore(end) {
			return schedule, fmt.Errorf("config: business_hours.%s: start %s must be before end %s", day.name, start, end)
		}

		day.set(domain.DayWindow{Start: start, End: end, Enabled: true})
	}

	return schedule, nil
}

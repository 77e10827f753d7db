package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/villidata/newfork/pkg/types"
)

func TestBusinessHoursConfig_ToWeekSchedule(t *testing.T) {
	cfg := BusinessHoursConfig{
		Monday:   DayHoursConfig{Start: "09:00", End: "17:00"},
		Saturday: DayHoursConfig{Start: "10:00", End: "15:00"},
		// Sunday left empty: closed
	}

	schedule, err := cfg.ToWeekSchedule()

	require.NoError(t, err)

	assert.True(t, schedule.Monday.Enabled)
	assert.Equal(t, types.TimeString("09:00"), schedule.Monday.Start)
	assert.Equal(t, types.TimeString("17:00"), schedule.Monday.End)

	assert.True(t, schedule.Saturday.Enabled)
	assert.Equal(t, types.TimeString("10:00"), schedule.Saturday.Start)

	assert.False(t, schedule.Sunday.Enabled)
	assert.False(t, schedule.Tuesday.Enabled)
}

func TestBusinessHoursConfig_ToWeekSchedule_InvalidTime(t *testing.T) {
	cfg := BusinessHoursConfig{
		Monday: DayHoursConfig{Start: "9am", End: "17:00"},
	}

	_, err := cfg.ToWeekSchedule()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "business_hours.monday")
}

func TestBusinessHoursConfig_ToWeekSchedule_StartAfterEnd(t *testing.T) {
	cfg := BusinessHoursConfig{
		Friday: DayHoursConfig{Start: "18:00", End: "09:00"},
	}

	_, err := cfg.ToWeekSchedule()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "business_hours.friday")
}

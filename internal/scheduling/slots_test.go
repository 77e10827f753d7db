package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/villidata/newfork/pkg/types"
)

func TestSlots(t *testing.T) {
	tests := []struct {
		name        string
		window      Window
		granularity int
		want        []types.TimeString
	}{
		{
			name:        "two hour window at 30 minutes",
			window:      Window{Start: "10:00", End: "12:00"},
			granularity: 30,
			want:        []types.TimeString{"10:00", "10:30", "11:00", "11:30"},
		},
		{
			name:        "start equals end yields nothing",
			window:      Window{Start: "10:00", End: "10:00"},
			granularity: 30,
			want:        []types.TimeString{},
		},
		{
			name:        "last start strictly before end",
			window:      Window{Start: "09:00", End: "10:01"},
			granularity: 30,
			want:        []types.TimeString{"09:00", "09:30", "10:00"},
		},
		{
			name:        "hour granularity",
			window:      Window{Start: "09:00", End: "12:00"},
			granularity: 60,
			want:        []types.TimeString{"09:00", "10:00", "11:00"},
		},
		{
			name:        "zero granularity uses the default",
			window:      Window{Start: "09:00", End: "10:00"},
			granularity: 0,
			want:        []types.TimeString{"09:00", "09:30"},
		},
		{
			name:        "window reaching end of day terminates",
			window:      Window{Start: "23:00", End: "23:59"},
			granularity: 30,
			want:        []types.TimeString{"23:00", "23:30"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CollectSlots(tt.window, tt.granularity)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlots_FullDayCount(t *testing.T) {
	// Monday 09:00-17:00 at 30 minutes: 16 candidates, spaced exactly.
	slots := CollectSlots(Window{Start: "09:00", End: "17:00"}, 30)
	require.Len(t, slots, 16)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("16:30"), slots[len(slots)-1])

	for i := 1; i < len(slots); i++ {
		prev, err := slots[i-1].Minutes()
		require.NoError(t, err)
		cur, err := slots[i].Minutes()
		require.NoError(t, err)
		assert.Equal(t, 30, cur-prev)
	}
}

func TestSlots_Restartable(t *testing.T) {
	seq := Slots(Window{Start: "09:00", End: "11:00"}, 30)

	first := make([]types.TimeString, 0)
	for s := range seq {
		first = append(first, s)
	}
	second := make([]types.TimeString, 0)
	for s := range seq {
		second = append(second, s)
	}

	assert.Equal(t, first, second)
	assert.Len(t, first, 4)
}

func TestSlots_LazyEarlyStop(t *testing.T) {
	var got []types.TimeString
	for s := range Slots(Window{Start: "09:00", End: "17:00"}, 30) {
		got = append(got, s)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []types.TimeString{"09:00", "09:30"}, got)
}

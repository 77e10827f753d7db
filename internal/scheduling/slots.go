package scheduling

import (
	"iter"

	"github.com/villidata/newfork/internal/domain"
	"github.com/villidata/newfork/pkg/types"
)

// Slots returns the candidate slot start times inside the window: the
// first at window.Start, each subsequent one granularityMinutes later,
// all strictly before window.End. The sequence is lazy and restartable;
// it performs no break or conflict filtering, so the same sequence can be
// filtered against different candidate durations downstream.
func Slots(w Window, granularityMinutes int) iter.Seq[types.TimeString] {
	if granularityMinutes <= 0 {
		granularityMinutes = domain.DefaultSlotGranularityMinutes
	}

	return func(yield func(types.TimeString) bool) {
		current := w.Start
		for current.IsBefore(w.End) {
			if !yield(current) {
				return
			}
			next, err := current.AddMinutes(granularityMinutes)
			if err != nil {
				// Ran past midnight; the window is exhausted.
				return
			}
			current = next
		}
	}
}

// CollectSlots materializes the slot sequence into a slice
func CollectSlots(w Window, granularityMinutes int) []types.TimeString {
	slots := make([]types.TimeString, 0)
	for s := range Slots(w, granularityMinutes) {
		slots = append(slots, s)
	}
	return slots
}

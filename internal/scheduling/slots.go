package scheduling

import (
	"time"
)

// SlotStarts generates candidate start times covering [workStart, workEnd],
// stepping by step. A slot is included while its end does not pass workEnd,
// so a slot ending exactly at workEnd is kept. A window shorter than one
// step yields no slots.
func SlotStarts(workStart, workEnd time.Time, step time.Duration) []time.Time {
	var starts []time.Time
	for t := workStart; !t.Add(step).After(workEnd); t = t.Add(step) {
		starts = append(starts, t)
	}
	return starts
}

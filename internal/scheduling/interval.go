package scheduling

import (
	"time"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Contains reports whether [pointStart, pointEnd] lies entirely within
// [windowStart, windowEnd], boundaries included.
func Contains(windowStart, windowEnd, pointStart, pointEnd time.Time) bool {
	return !pointStart.Before(windowStart) && !pointEnd.After(windowEnd)
}

package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 12, 5, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"identical intervals", at(9, 0), at(9, 30), at(9, 0), at(9, 30), true},
		{"partial overlap", at(9, 0), at(10, 0), at(9, 30), at(10, 30), true},
		{"contained interval", at(9, 0), at(11, 0), at(9, 30), at(10, 0), true},
		{"touching endpoints do not overlap", at(9, 0), at(9, 30), at(9, 30), at(10, 0), false},
		{"touching endpoints reversed", at(9, 30), at(10, 0), at(9, 0), at(9, 30), false},
		{"disjoint", at(8, 0), at(8, 30), at(14, 0), at(14, 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// overlap is symmetric
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestContains(t *testing.T) {
	workStart, workEnd := at(8, 0), at(17, 0)

	assert.True(t, Contains(workStart, workEnd, at(8, 0), at(8, 30)), "slot at window start")
	assert.True(t, Contains(workStart, workEnd, at(16, 30), at(17, 0)), "slot ending exactly at window end")
	assert.True(t, Contains(workStart, workEnd, workStart, workEnd), "window contains itself")
	assert.False(t, Contains(workStart, workEnd, at(7, 30), at(8, 0)), "before window")
	assert.False(t, Contains(workStart, workEnd, at(16, 45), at(17, 15)), "spills past window end")
	assert.False(t, Contains(workStart, workEnd, at(17, 0), at(17, 30)), "after window")
}

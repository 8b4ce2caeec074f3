package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotStarts(t *testing.T) {
	step := 30 * time.Minute

	t.Run("full day grid includes slot ending at window end", func(t *testing.T) {
		starts := SlotStarts(at(8, 0), at(17, 0), step)
		require.Len(t, starts, 18)
		assert.Equal(t, at(8, 0), starts[0])
		assert.Equal(t, at(16, 30), starts[len(starts)-1])
	})

	t.Run("window shorter than one step is empty", func(t *testing.T) {
		assert.Empty(t, SlotStarts(at(8, 0), at(8, 20), step))
	})

	t.Run("window of exactly one step has one slot", func(t *testing.T) {
		starts := SlotStarts(at(8, 0), at(8, 30), step)
		require.Len(t, starts, 1)
		assert.Equal(t, at(8, 0), starts[0])
	})

	t.Run("uneven window drops the trailing remainder", func(t *testing.T) {
		starts := SlotStarts(at(8, 0), at(9, 45), step)
		require.Len(t, starts, 3)
		assert.Equal(t, at(9, 0), starts[2])
	})

	t.Run("restartable", func(t *testing.T) {
		first := SlotStarts(at(8, 0), at(10, 0), step)
		second := SlotStarts(at(8, 0), at(10, 0), step)
		assert.Equal(t, first, second)
	})
}

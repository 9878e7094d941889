package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlot(t *testing.T) {
	slot, err := ParseSlot("Mon-3")
	require.NoError(t, err)
	assert.Equal(t, Slot{Day: "Mon", Hour: 3}, slot)
	assert.Equal(t, "Mon-3", slot.String())

	slot, err = ParseSlot("  Fri-8 ")
	require.NoError(t, err)
	assert.Equal(t, Slot{Day: "Fri", Hour: 8}, slot)
}

func TestParseSlotRejectsMalformedInput(t *testing.T) {
	for _, raw := range []string{"", "Mon", "Mon-", "Mon-0", "Mon-9", "Sun-1", "mon-3", "Mon-three", "3-Mon"} {
		_, err := ParseSlot(raw)
		assert.Error(t, err, "input %q", raw)
	}
}

func TestSlotBeforeOrdersByDayThenHour(t *testing.T) {
	assert.True(t, Slot{Day: "Mon", Hour: 8}.Before(Slot{Day: "Tue", Hour: 1}))
	assert.True(t, Slot{Day: "Wed", Hour: 2}.Before(Slot{Day: "Wed", Hour: 3}))
	assert.False(t, Slot{Day: "Fri", Hour: 1}.Before(Slot{Day: "Mon", Hour: 8}))
}

func TestAllSlotsCoversUniverse(t *testing.T) {
	slots := AllSlots()
	require.Len(t, slots, SlotUniverseSize)

	seen := make(map[Slot]struct{}, len(slots))
	for i, slot := range slots {
		assert.True(t, slot.Valid())
		if i > 0 {
			assert.True(t, slots[i-1].Before(slot))
		}
		seen[slot] = struct{}{}
	}
	assert.Len(t, seen, SlotUniverseSize)
}

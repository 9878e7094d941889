package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimetableAssignRefusesOverwrite(t *testing.T) {
	tt := NewTimetable()
	alice := NewFaculty("a", "Alice", "Math", 1, "R1")
	bob := NewFaculty("b", "Bob", "Physics", 1, "R2")
	slot := Slot{Day: "Mon", Hour: 1}

	require.NoError(t, tt.Assign(slot, alice))
	err := tt.Assign(slot, bob)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Alice")

	assert.Same(t, alice, tt.Occupant(slot))
	assert.Equal(t, 1, tt.Len())
}

func TestTimetableFreeSlotsComplementsOccupied(t *testing.T) {
	tt := NewTimetable()
	alice := NewFaculty("a", "Alice", "Math", 2, "R1")
	require.NoError(t, tt.Assign(Slot{Day: "Mon", Hour: 1}, alice))
	require.NoError(t, tt.Assign(Slot{Day: "Fri", Hour: 8}, alice))

	free := tt.FreeSlots()
	assert.Len(t, free, SlotUniverseSize-2)
	for _, slot := range free {
		assert.False(t, tt.Occupied(slot))
	}

	occupied := tt.OccupiedSlots()
	assert.Equal(t, []Slot{{Day: "Mon", Hour: 1}, {Day: "Fri", Hour: 8}}, occupied)
}

func TestFacultyNeedTracksSlots(t *testing.T) {
	f := NewFaculty("a", "Alice", "Math", 3, "R1")
	assert.Equal(t, 3, f.Need())

	f.AddSlot(Slot{Day: "Mon", Hour: 1})
	f.AddSlot(Slot{Day: "Mon", Hour: 1}) // idempotent
	f.AddSlot(Slot{Day: "Tue", Hour: 2})
	assert.Equal(t, 1, f.Need())
	assert.True(t, f.HasSlot(Slot{Day: "Tue", Hour: 2}))
	assert.Equal(t, []Slot{{Day: "Mon", Hour: 1}, {Day: "Tue", Hour: 2}}, f.SortedSlots())
}

package models

import (
	"fmt"
	"sort"
)

// Timetable is the authoritative slot-to-faculty mapping: at most one occupant
// per slot, and the single source of truth for "is this slot taken" during
// selection, commit, and auto-generation.
type Timetable struct {
	slots map[Slot]*Faculty
}

// NewTimetable returns an empty timetable.
func NewTimetable() *Timetable {
	return &Timetable{slots: make(map[Slot]*Faculty)}
}

// Occupant returns the faculty holding the slot, or nil.
func (t *Timetable) Occupant(slot Slot) *Faculty {
	return t.slots[slot]
}

// Occupied reports whether the slot is taken.
func (t *Timetable) Occupied(slot Slot) bool {
	_, ok := t.slots[slot]
	return ok
}

// Assign writes slot-to-faculty. It refuses to overwrite an existing occupant;
// callers decide occupancy before mutating.
func (t *Timetable) Assign(slot Slot, f *Faculty) error {
	if existing, ok := t.slots[slot]; ok {
		return fmt.Errorf("slot %s already assigned to %s", slot, existing.Name)
	}
	t.slots[slot] = f
	return nil
}

// Len returns the number of occupied slots.
func (t *Timetable) Len() int {
	return len(t.slots)
}

// OccupiedSlots returns the occupied slots in grid order.
func (t *Timetable) OccupiedSlots() []Slot {
	slots := make([]Slot, 0, len(t.slots))
	for slot := range t.slots {
		slots = append(slots, slot)
	}
	sortSlots(slots)
	return slots
}

// FreeSlots returns the complement of the occupied set within the 40-slot
// universe, in grid order.
func (t *Timetable) FreeSlots() []Slot {
	free := make([]Slot, 0, SlotUniverseSize-len(t.slots))
	for _, slot := range AllSlots() {
		if !t.Occupied(slot) {
			free = append(free, slot)
		}
	}
	return free
}

// Entries iterates the slot-to-faculty pairs. Order is unspecified.
func (t *Timetable) Entries(fn func(Slot, *Faculty)) {
	for slot, f := range t.slots {
		fn(slot, f)
	}
}

func sortSlots(slots []Slot) {
	sort.Slice(slots, func(i, j int) bool { return slots[i].Before(slots[j]) })
}

package models

import "sort"

// Faculty is a teaching assignment request: a fixed number of weekly slots in
// a fixed room. Identity is the generated ID; two faculty with the same name
// are distinct records.
type Faculty struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Subject       string `json:"subject"`
	RequiredHours int    `json:"required_hours"`
	Room          string `json:"room"`

	// Slots holds this faculty's view of its assigned slots. The engine keeps
	// it in sync with the Timetable for every internal mutation; imported
	// snapshots may leave it divergent, which the conflict detector
	// reconciles.
	Slots map[Slot]struct{} `json:"-"`
}

// NewFaculty builds an unassigned faculty record.
func NewFaculty(id, name, subject string, requiredHours int, room string) *Faculty {
	return &Faculty{
		ID:            id,
		Name:          name,
		Subject:       subject,
		RequiredHours: requiredHours,
		Room:          room,
		Slots:         make(map[Slot]struct{}),
	}
}

// Need returns how many more slots this faculty requires.
func (f *Faculty) Need() int {
	return f.RequiredHours - len(f.Slots)
}

// AddSlot records a slot in the faculty's own view.
func (f *Faculty) AddSlot(slot Slot) {
	if f.Slots == nil {
		f.Slots = make(map[Slot]struct{})
	}
	f.Slots[slot] = struct{}{}
}

// HasSlot reports membership in the faculty's slot set.
func (f *Faculty) HasSlot(slot Slot) bool {
	_, ok := f.Slots[slot]
	return ok
}

// SortedSlots returns the faculty's slots in grid order.
func (f *Faculty) SortedSlots() []Slot {
	slots := make([]Slot, 0, len(f.Slots))
	for slot := range f.Slots {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Before(slots[j]) })
	return slots
}

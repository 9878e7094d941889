package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Days of the teaching week, in grid order.
var Days = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}

// HoursPerDay is the number of hourly slots in a teaching day.
const HoursPerDay = 8

// SlotUniverseSize is the total number of assignable slots in a week
// (5 days of HoursPerDay slots each).
const SlotUniverseSize = 5 * HoursPerDay

// Slot identifies one cell of the weekly grid. The canonical string form is
// "<Day>-<hour>", e.g. "Mon-3".
type Slot struct {
	Day  string
	Hour int
}

// ParseSlot validates and parses the canonical "<Day>-<hour>" form.
func ParseSlot(raw string) (Slot, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), "-", 2)
	if len(parts) != 2 {
		return Slot{}, fmt.Errorf("invalid slot %q: want \"<Day>-<hour>\"", raw)
	}
	day := parts[0]
	if !validDay(day) {
		return Slot{}, fmt.Errorf("invalid slot %q: unknown day %q", raw, day)
	}
	hour, err := strconv.Atoi(parts[1])
	if err != nil || hour < 1 || hour > HoursPerDay {
		return Slot{}, fmt.Errorf("invalid slot %q: hour must be 1..%d", raw, HoursPerDay)
	}
	return Slot{Day: day, Hour: hour}, nil
}

// String returns the canonical slot form.
func (s Slot) String() string {
	return s.Day + "-" + strconv.Itoa(s.Hour)
}

// Valid reports whether the slot lies inside the weekly grid.
func (s Slot) Valid() bool {
	return validDay(s.Day) && s.Hour >= 1 && s.Hour <= HoursPerDay
}

// Before orders slots by day column then hour row, matching the grid layout.
func (s Slot) Before(other Slot) bool {
	di, do := dayIndex(s.Day), dayIndex(other.Day)
	if di != do {
		return di < do
	}
	return s.Hour < other.Hour
}

// AllSlots enumerates the full 40-slot universe in stable grid order.
func AllSlots() []Slot {
	slots := make([]Slot, 0, SlotUniverseSize)
	for _, day := range Days {
		for hour := 1; hour <= HoursPerDay; hour++ {
			slots = append(slots, Slot{Day: day, Hour: hour})
		}
	}
	return slots
}

func validDay(day string) bool {
	return dayIndex(day) >= 0
}

func dayIndex(day string) int {
	for i, d := range Days {
		if d == day {
			return i
		}
	}
	return -1
}

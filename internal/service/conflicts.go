package service

import (
	"sort"

	appErrors "github.com/campushq/timetable-api/pkg/errors"

	"github.com/campushq/timetable-api/internal/dto"
	"github.com/campushq/timetable-api/internal/models"
)

// DetectRoomConflicts scans for slots where two or more distinct faculty
// occupy the same room. It merges the timetable map with every faculty's own
// slot set, so inconsistencies introduced by an imported snapshot are still
// caught. Read-only; safe to call at any time, including mid-selection.
func (s *SchedulerService) DetectRoomConflicts() *dto.ConflictReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := &dto.ConflictReport{
		Slots:   []string{},
		Details: map[string][]dto.FacultyView{},
	}
	for _, slot := range s.conflictedSlots() {
		key := slot.String()
		report.Slots = append(report.Slots, key)
		for _, f := range s.occupantsAt(slot) {
			report.Details[key] = append(report.Details[key], *facultyView(f))
		}
	}

	s.metrics.ObserveConflictScan(len(report.Slots))
	return report
}

// FacultiesAt returns the faculty occupying a slot, merged and deduplicated
// the same way the conflict scan sees them.
func (s *SchedulerService) FacultiesAt(raw string) ([]dto.FacultyView, error) {
	slot, err := models.ParseSlot(raw)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]dto.FacultyView, 0)
	for _, f := range s.occupantsAt(slot) {
		views = append(views, *facultyView(f))
	}
	return views, nil
}

// conflictedSlots computes the conflicted slot set. Caller holds the mutex.
func (s *SchedulerService) conflictedSlots() []models.Slot {
	reverse := s.reverseIndex()

	var conflicted []models.Slot
	for slot, occupants := range reverse {
		if len(occupants) < 2 {
			continue
		}
		rooms := make(map[string]int, len(occupants))
		for _, f := range occupants {
			rooms[f.Room]++
			if rooms[f.Room] >= 2 {
				conflicted = append(conflicted, slot)
				break
			}
		}
	}
	sort.Slice(conflicted, func(i, j int) bool { return conflicted[i].Before(conflicted[j]) })
	return conflicted
}

// reverseIndex builds slot-to-occupants from both views of the state,
// deduplicated by faculty identity. Caller holds the mutex.
func (s *SchedulerService) reverseIndex() map[models.Slot][]*models.Faculty {
	reverse := make(map[models.Slot][]*models.Faculty)
	seen := make(map[models.Slot]map[string]struct{})

	add := func(slot models.Slot, f *models.Faculty) {
		if seen[slot] == nil {
			seen[slot] = make(map[string]struct{})
		}
		if _, dup := seen[slot][f.ID]; dup {
			return
		}
		seen[slot][f.ID] = struct{}{}
		reverse[slot] = append(reverse[slot], f)
	}

	for _, f := range s.faculty {
		for slot := range f.Slots {
			add(slot, f)
		}
	}
	s.timetable.Entries(add)

	return reverse
}

// occupantsAt lists the occupants of one slot, same dedup rule as the
// conflict scan. Caller holds the mutex.
func (s *SchedulerService) occupantsAt(slot models.Slot) []*models.Faculty {
	return s.reverseIndex()[slot]
}

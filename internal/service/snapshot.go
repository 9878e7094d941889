package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/campushq/timetable-api/internal/dto"
	"github.com/campushq/timetable-api/internal/models"
	appErrors "github.com/campushq/timetable-api/pkg/errors"
)

// ExportSnapshot serializes the faculty list and the timetable mapping. The
// output is deterministic: faculty in insertion order, slots in grid order.
func (s *SchedulerService) ExportSnapshot() *dto.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &dto.Snapshot{
		Version:   dto.SnapshotVersion,
		SavedAt:   time.Now().UTC(),
		Faculty:   make([]dto.SnapshotFaculty, 0, len(s.faculty)),
		Timetable: make(map[string]string, s.timetable.Len()),
	}

	for _, f := range s.faculty {
		slots := make([]string, 0, len(f.Slots))
		for _, slot := range f.SortedSlots() {
			slots = append(slots, slot.String())
		}
		snap.Faculty = append(snap.Faculty, dto.SnapshotFaculty{
			ID:            f.ID,
			Name:          f.Name,
			Subject:       f.Subject,
			RequiredHours: f.RequiredHours,
			Room:          f.Room,
			Slots:         slots,
		})
	}

	s.timetable.Entries(func(slot models.Slot, f *models.Faculty) {
		snap.Timetable[slot.String()] = f.ID
	})

	return snap
}

// ImportSnapshot replaces the scheduler state with the snapshot's contents.
// The swap is all-or-nothing: a malformed snapshot leaves the current state
// untouched. Faculty slot lists that disagree with the timetable mapping are
// accepted as-is; reconciling them is the conflict detector's job. Any active
// selection session is discarded, since it referenced the replaced state.
func (s *SchedulerService) ImportSnapshot(snap dto.Snapshot) error {
	if snap.Version != dto.SnapshotVersion {
		return appErrors.Clone(appErrors.ErrFormat, fmt.Sprintf("unsupported snapshot version %d", snap.Version))
	}
	if err := s.validator.Struct(snap); err != nil {
		return appErrors.Wrap(err, appErrors.ErrFormat.Code, appErrors.ErrFormat.Status, "snapshot failed validation")
	}

	faculty := make([]*models.Faculty, 0, len(snap.Faculty))
	byID := make(map[string]*models.Faculty, len(snap.Faculty))
	for _, rec := range snap.Faculty {
		if _, dup := byID[rec.ID]; dup {
			return appErrors.Clone(appErrors.ErrFormat, fmt.Sprintf("duplicate faculty id %s", rec.ID))
		}
		f := models.NewFaculty(rec.ID, rec.Name, rec.Subject, rec.RequiredHours, rec.Room)
		for _, raw := range rec.Slots {
			slot, err := models.ParseSlot(raw)
			if err != nil {
				return appErrors.Wrap(err, appErrors.ErrFormat.Code, appErrors.ErrFormat.Status,
					fmt.Sprintf("faculty %s has a malformed slot", rec.Name))
			}
			f.AddSlot(slot)
		}
		faculty = append(faculty, f)
		byID[f.ID] = f
	}

	timetable := models.NewTimetable()
	for raw, facultyID := range snap.Timetable {
		slot, err := models.ParseSlot(raw)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrFormat.Code, appErrors.ErrFormat.Status, "timetable has a malformed slot key")
		}
		f, ok := byID[facultyID]
		if !ok {
			return appErrors.Clone(appErrors.ErrFormat, fmt.Sprintf("timetable slot %s references unknown faculty %s", slot, facultyID))
		}
		if err := timetable.Assign(slot, f); err != nil {
			return appErrors.Wrap(err, appErrors.ErrFormat.Code, appErrors.ErrFormat.Status, "timetable assigns a slot twice")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.faculty = faculty
	s.timetable = timetable
	s.session = nil

	s.logger.Info("snapshot_imported",
		zap.Int("faculty", len(faculty)),
		zap.Int("occupied_slots", timetable.Len()),
	)
	return nil
}

package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/timetable-api/internal/dto"
	"github.com/campushq/timetable-api/internal/models"
	appErrors "github.com/campushq/timetable-api/pkg/errors"
)

func newScheduler(t *testing.T) *SchedulerService {
	t.Helper()
	return NewSchedulerService(nil, nil, nil, SchedulerConfig{Seed: 1, IncludeSelection: true})
}

// commitFaculty walks the full selection flow: open a session, toggle the
// given slots, commit.
func commitFaculty(t *testing.T, s *SchedulerService, name, subject, hours, room string, slots ...string) *dto.FacultyView {
	t.Helper()
	_, err := s.StartSelection(dto.StartSelectionRequest{Name: name, Subject: subject, Hours: hours, Room: room})
	require.NoError(t, err)
	for _, slot := range slots {
		_, err := s.ToggleSlot(slot)
		require.NoError(t, err)
	}
	view, err := s.CommitSelection()
	require.NoError(t, err)
	return view
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, code, appErr.Code)
}

func TestSchedulerServiceStartSelectionValidation(t *testing.T) {
	s := newScheduler(t)

	_, err := s.StartSelection(dto.StartSelectionRequest{Name: "Alice", Subject: "Math", Room: "R1"})
	assertCode(t, err, appErrors.ErrValidation.Code)

	_, err = s.StartSelection(dto.StartSelectionRequest{Name: "Alice", Subject: "Math", Hours: "four", Room: "R1"})
	assertCode(t, err, appErrors.ErrValidation.Code)

	_, err = s.StartSelection(dto.StartSelectionRequest{Name: "Alice", Subject: "Math", Hours: "0", Room: "R1"})
	assertCode(t, err, appErrors.ErrValidation.Code)

	_, err = s.StartSelection(dto.StartSelectionRequest{Name: "Alice", Subject: "Math", Hours: "41", Room: "R1"})
	assertCode(t, err, appErrors.ErrValidation.Code)
}

func TestSchedulerServiceStartSelectionOpensSession(t *testing.T) {
	s := newScheduler(t)

	view, err := s.StartSelection(dto.StartSelectionRequest{Name: "Alice", Subject: "Math", Hours: "2", Room: "R1"})
	require.NoError(t, err)
	assert.NotEmpty(t, view.FacultyID)
	assert.Equal(t, 2, view.RequiredHours)
	assert.Equal(t, "0/2", view.Progress)
	assert.Empty(t, view.ChosenSlots)

	// only one session at a time
	_, err = s.StartSelection(dto.StartSelectionRequest{Name: "Bob", Subject: "Physics", Hours: "1", Room: "R2"})
	assertCode(t, err, appErrors.ErrValidation.Code)
}

func TestSchedulerServiceToggleSlotWithoutSession(t *testing.T) {
	s := newScheduler(t)

	_, err := s.ToggleSlot("Mon-1")
	assertCode(t, err, appErrors.ErrNoActiveSelection.Code)
}

func TestSchedulerServiceToggleSlotRejectsMalformedIdentifier(t *testing.T) {
	s := newScheduler(t)
	_, err := s.StartSelection(dto.StartSelectionRequest{Name: "Alice", Subject: "Math", Hours: "1", Room: "R1"})
	require.NoError(t, err)

	for _, raw := range []string{"", "Mon", "Sun-1", "Mon-0", "Mon-9", "Mon-x"} {
		_, err := s.ToggleSlot(raw)
		assertCode(t, err, appErrors.ErrValidation.Code)
	}
}

func TestSchedulerServiceToggleSlotSelectAndDeselect(t *testing.T) {
	s := newScheduler(t)
	_, err := s.StartSelection(dto.StartSelectionRequest{Name: "Alice", Subject: "Math", Hours: "2", Room: "R1"})
	require.NoError(t, err)

	view, err := s.ToggleSlot("Mon-3")
	require.NoError(t, err)
	assert.Equal(t, []string{"Mon-3"}, view.ChosenSlots)
	assert.Equal(t, "1/2", view.Progress)

	// toggling again deselects
	view, err = s.ToggleSlot("Mon-3")
	require.NoError(t, err)
	assert.Empty(t, view.ChosenSlots)
	assert.Equal(t, "0/2", view.Progress)
}

func TestSchedulerServiceToggleSlotQuotaReached(t *testing.T) {
	s := newScheduler(t)
	_, err := s.StartSelection(dto.StartSelectionRequest{Name: "Alice", Subject: "Math", Hours: "1", Room: "R1"})
	require.NoError(t, err)

	_, err = s.ToggleSlot("Mon-1")
	require.NoError(t, err)

	_, err = s.ToggleSlot("Tue-1")
	assertCode(t, err, appErrors.ErrQuotaReached.Code)

	// deselecting past quota is always allowed
	view, err := s.ToggleSlot("Mon-1")
	require.NoError(t, err)
	assert.Empty(t, view.ChosenSlots)
}

func TestSchedulerServiceToggleSlotOccupied(t *testing.T) {
	s := newScheduler(t)
	commitFaculty(t, s, "Alice", "Math", "1", "R1", "Wed-4")

	_, err := s.StartSelection(dto.StartSelectionRequest{Name: "Bob", Subject: "Physics", Hours: "1", Room: "R2"})
	require.NoError(t, err)

	_, err = s.ToggleSlot("Wed-4")
	assertCode(t, err, appErrors.ErrSlotOccupied.Code)
	assert.Contains(t, err.Error(), "Alice")
}

func TestSchedulerServiceCommitIncompleteSelection(t *testing.T) {
	s := newScheduler(t)
	_, err := s.StartSelection(dto.StartSelectionRequest{Name: "Alice", Subject: "Math", Hours: "3", Room: "R1"})
	require.NoError(t, err)
	_, err = s.ToggleSlot("Mon-1")
	require.NoError(t, err)

	_, err = s.CommitSelection()
	assertCode(t, err, appErrors.ErrSelectionIncomplete.Code)
	assert.Contains(t, err.Error(), "1 of 3")

	// the session survives a failed commit
	require.NotNil(t, s.Session())
}

func TestSchedulerServiceCommitWithoutSession(t *testing.T) {
	s := newScheduler(t)
	_, err := s.CommitSelection()
	assertCode(t, err, appErrors.ErrNoActiveSelection.Code)
}

func TestSchedulerServiceCommitWritesTimetable(t *testing.T) {
	s := newScheduler(t)
	view := commitFaculty(t, s, "Alice", "Math", "2", "R1", "Mon-1", "Tue-2")

	assert.Equal(t, []string{"Mon-1", "Tue-2"}, view.AssignedSlots)
	assert.Nil(t, s.Session())

	faculties := s.Faculties()
	require.Len(t, faculties, 1)
	assert.Equal(t, "Alice", faculties[0].Name)

	detail, err := s.SlotDetail("Tue-2")
	require.NoError(t, err)
	assert.True(t, detail.Occupied)
	assert.Equal(t, "Alice", detail.Occupant.Name)
}

func TestSchedulerServiceCommitConflictIsAtomic(t *testing.T) {
	s := newScheduler(t)

	// Carol wants every slot of the week but holds none yet.
	require.NoError(t, s.ImportSnapshot(dto.Snapshot{
		Version: dto.SnapshotVersion,
		Faculty: []dto.SnapshotFaculty{
			{ID: "carol", Name: "Carol", Subject: "History", RequiredHours: 40, Room: "R9"},
		},
	}))

	// Bob selects two slots that are free at toggle time.
	_, err := s.StartSelection(dto.StartSelectionRequest{Name: "Bob", Subject: "Physics", Hours: "2", Room: "R1"})
	require.NoError(t, err)
	_, err = s.ToggleSlot("Mon-2")
	require.NoError(t, err)
	_, err = s.ToggleSlot("Mon-3")
	require.NoError(t, err)

	// Generation fills the whole grid for Carol, stealing Bob's chosen slots.
	include := false
	report := s.AutoGenerate(dto.GenerateRequest{IncludeSelection: &include})
	assert.Equal(t, 40, report.Assigned)

	_, err = s.CommitSelection()
	assertCode(t, err, appErrors.ErrConflict.Code)

	// the error carries one entry per conflicted slot for display
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	conflicts, ok := appErr.Details.([]models.CommitConflict)
	require.True(t, ok)
	require.Len(t, conflicts, 2)
	slots := []string{conflicts[0].Slot, conflicts[1].Slot}
	assert.ElementsMatch(t, []string{"Mon-2", "Mon-3"}, slots)
	assert.Equal(t, "Carol", conflicts[0].OccupantName)
	assert.False(t, conflicts[0].SameRoom)
	assert.Contains(t, err.Error(), "Mon-2")

	// nothing was written and the session is still open
	assert.Len(t, s.Faculties(), 1)
	assert.Len(t, s.ExportSnapshot().Timetable, 40)
	require.NotNil(t, s.Session())
	assert.Equal(t, "Bob", s.Session().Name)
}

func TestSchedulerServiceCommitConflictFlagsSameRoom(t *testing.T) {
	s := newScheduler(t)
	require.NoError(t, s.ImportSnapshot(dto.Snapshot{
		Version: dto.SnapshotVersion,
		Faculty: []dto.SnapshotFaculty{
			{ID: "carol", Name: "Carol", Subject: "History", RequiredHours: 40, Room: "R1"},
		},
	}))

	_, err := s.StartSelection(dto.StartSelectionRequest{Name: "Bob", Subject: "Physics", Hours: "1", Room: "R1"})
	require.NoError(t, err)
	_, err = s.ToggleSlot("Mon-2")
	require.NoError(t, err)

	include := false
	s.AutoGenerate(dto.GenerateRequest{IncludeSelection: &include})

	_, err = s.CommitSelection()
	assertCode(t, err, appErrors.ErrConflict.Code)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	conflicts := appErr.Details.([]models.CommitConflict)
	require.Len(t, conflicts, 1)
	assert.True(t, conflicts[0].SameRoom)
	assert.Contains(t, conflicts[0].String(), "room conflict")
}

func TestSchedulerServiceResetClearsEverything(t *testing.T) {
	s := newScheduler(t)
	commitFaculty(t, s, "Alice", "Math", "1", "R1", "Mon-1")
	_, err := s.StartSelection(dto.StartSelectionRequest{Name: "Bob", Subject: "Physics", Hours: "1", Room: "R2"})
	require.NoError(t, err)

	s.Reset()

	assert.Nil(t, s.Session())
	assert.Empty(t, s.Faculties())
	snap := s.ExportSnapshot()
	assert.Empty(t, snap.Faculty)
	assert.Empty(t, snap.Timetable)
}

func TestSchedulerServiceGridStates(t *testing.T) {
	s := newScheduler(t)
	commitFaculty(t, s, "Alice", "Math", "1", "R1", "Mon-1")

	_, err := s.StartSelection(dto.StartSelectionRequest{Name: "Bob", Subject: "Physics", Hours: "1", Room: "R2"})
	require.NoError(t, err)
	_, err = s.ToggleSlot("Tue-5")
	require.NoError(t, err)

	grid := s.Grid()
	assert.Equal(t, 5, len(grid.Days))
	assert.Equal(t, 8, grid.HoursPerDay)
	assert.Len(t, grid.Cells, 40)

	assert.Equal(t, dto.CellOccupied, grid.Cells["Mon-1"].State)
	assert.Equal(t, "Alice", grid.Cells["Mon-1"].FacultyName)
	assert.Equal(t, dto.CellSelected, grid.Cells["Tue-5"].State)
	assert.Equal(t, "Bob", grid.Cells["Tue-5"].FacultyName)
	assert.Equal(t, dto.CellEmpty, grid.Cells["Fri-8"].State)

	require.NotNil(t, grid.Selection)
	assert.Equal(t, "Bob", grid.Selection.Name)
}

func TestSchedulerServiceSlotDetailEmpty(t *testing.T) {
	s := newScheduler(t)

	detail, err := s.SlotDetail("Thu-7")
	require.NoError(t, err)
	assert.False(t, detail.Occupied)
	assert.Nil(t, detail.Occupant)

	_, err = s.SlotDetail("Thu-9")
	assertCode(t, err, appErrors.ErrValidation.Code)
}

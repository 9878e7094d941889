package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/timetable-api/internal/dto"
	appErrors "github.com/campushq/timetable-api/pkg/errors"
)

func TestSnapshotRoundTrip(t *testing.T) {
	s := newScheduler(t)
	commitFaculty(t, s, "Alice", "Math", "2", "R1", "Mon-1", "Wed-3")
	commitFaculty(t, s, "Bob", "Physics", "1", "R2", "Tue-2")

	snap := s.ExportSnapshot()
	require.Equal(t, dto.SnapshotVersion, snap.Version)
	require.Len(t, snap.Faculty, 2)
	assert.Equal(t, []string{"Mon-1", "Wed-3"}, snap.Faculty[0].Slots)
	assert.Len(t, snap.Timetable, 3)

	restored := newScheduler(t)
	require.NoError(t, restored.ImportSnapshot(*snap))

	assert.Equal(t, snap.Faculty, restored.ExportSnapshot().Faculty)
	assert.Equal(t, snap.Timetable, restored.ExportSnapshot().Timetable)
}

func TestImportSnapshotRejectsUnknownVersion(t *testing.T) {
	s := newScheduler(t)

	err := s.ImportSnapshot(dto.Snapshot{Version: 99})
	assertCode(t, err, appErrors.ErrFormat.Code)
}

func TestImportSnapshotRejectsMissingFields(t *testing.T) {
	s := newScheduler(t)

	err := s.ImportSnapshot(dto.Snapshot{
		Version: dto.SnapshotVersion,
		Faculty: []dto.SnapshotFaculty{{ID: "a", Name: "Alice"}},
	})
	assertCode(t, err, appErrors.ErrFormat.Code)
}

func TestImportSnapshotRejectsDuplicateFacultyID(t *testing.T) {
	s := newScheduler(t)

	err := s.ImportSnapshot(dto.Snapshot{
		Version: dto.SnapshotVersion,
		Faculty: []dto.SnapshotFaculty{
			{ID: "a", Name: "Alice", Subject: "Math", RequiredHours: 1, Room: "R1"},
			{ID: "a", Name: "Bob", Subject: "Physics", RequiredHours: 1, Room: "R2"},
		},
	})
	assertCode(t, err, appErrors.ErrFormat.Code)
}

func TestImportSnapshotRejectsUnknownFacultyReference(t *testing.T) {
	s := newScheduler(t)

	err := s.ImportSnapshot(dto.Snapshot{
		Version:   dto.SnapshotVersion,
		Faculty:   []dto.SnapshotFaculty{{ID: "a", Name: "Alice", Subject: "Math", RequiredHours: 1, Room: "R1"}},
		Timetable: map[string]string{"Mon-1": "ghost"},
	})
	assertCode(t, err, appErrors.ErrFormat.Code)
}

func TestImportSnapshotRejectsMalformedSlot(t *testing.T) {
	s := newScheduler(t)

	err := s.ImportSnapshot(dto.Snapshot{
		Version: dto.SnapshotVersion,
		Faculty: []dto.SnapshotFaculty{
			{ID: "a", Name: "Alice", Subject: "Math", RequiredHours: 1, Room: "R1", Slots: []string{"Someday-1"}},
		},
	})
	assertCode(t, err, appErrors.ErrFormat.Code)

	err = s.ImportSnapshot(dto.Snapshot{
		Version:   dto.SnapshotVersion,
		Faculty:   []dto.SnapshotFaculty{{ID: "a", Name: "Alice", Subject: "Math", RequiredHours: 1, Room: "R1"}},
		Timetable: map[string]string{"Mon-99": "a"},
	})
	assertCode(t, err, appErrors.ErrFormat.Code)
}

func TestImportSnapshotFailureLeavesStateUntouched(t *testing.T) {
	s := newScheduler(t)
	commitFaculty(t, s, "Alice", "Math", "1", "R1", "Mon-1")
	before := s.ExportSnapshot()

	err := s.ImportSnapshot(dto.Snapshot{
		Version:   dto.SnapshotVersion,
		Faculty:   []dto.SnapshotFaculty{{ID: "b", Name: "Bob", Subject: "Physics", RequiredHours: 1, Room: "R2"}},
		Timetable: map[string]string{"Mon-1": "ghost"},
	})
	assertCode(t, err, appErrors.ErrFormat.Code)

	after := s.ExportSnapshot()
	assert.Equal(t, before.Faculty, after.Faculty)
	assert.Equal(t, before.Timetable, after.Timetable)
}

func TestImportSnapshotDiscardsActiveSession(t *testing.T) {
	s := newScheduler(t)
	_, err := s.StartSelection(dto.StartSelectionRequest{Name: "Dana", Subject: "Chemistry", Hours: "1", Room: "Lab"})
	require.NoError(t, err)

	require.NoError(t, s.ImportSnapshot(dto.Snapshot{Version: dto.SnapshotVersion}))

	assert.Nil(t, s.Session())
}

func TestImportSnapshotAcceptsDivergentViews(t *testing.T) {
	s := newScheduler(t)

	// Bob claims a slot the timetable gives to Alice. Import must not reject
	// it; the conflict scan reports it instead.
	err := s.ImportSnapshot(dto.Snapshot{
		Version: dto.SnapshotVersion,
		Faculty: []dto.SnapshotFaculty{
			{ID: "a", Name: "Alice", Subject: "Math", RequiredHours: 1, Room: "R1", Slots: []string{"Mon-1"}},
			{ID: "b", Name: "Bob", Subject: "Physics", RequiredHours: 1, Room: "R1", Slots: []string{"Mon-1"}},
		},
		Timetable: map[string]string{"Mon-1": "a"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Mon-1"}, s.DetectRoomConflicts().Slots)
}

package dto

import "time"

// SnapshotVersion tags the serialized snapshot layout.
const SnapshotVersion = 1

// SnapshotFaculty is the serialized faculty record.
type SnapshotFaculty struct {
	ID            string   `json:"id" validate:"required"`
	Name          string   `json:"name" validate:"required"`
	Subject       string   `json:"subject" validate:"required"`
	RequiredHours int      `json:"requiredHours" validate:"required,min=1,max=40"`
	Room          string   `json:"room" validate:"required"`
	Slots         []string `json:"slots"`
}

// Snapshot is the full serialized scheduler state: the faculty list and the
// timetable's slot-to-faculty-ID mapping. The two views may disagree in a
// hand-edited or inconsistent snapshot; import accepts that and leaves it to
// the conflict detector.
type Snapshot struct {
	Version   int               `json:"version" validate:"required"`
	SavedAt   time.Time         `json:"savedAt"`
	Faculty   []SnapshotFaculty `json:"faculty" validate:"dive"`
	Timetable map[string]string `json:"timetable"`
}

// SnapshotFileRequest names a snapshot file under the configured directory.
type SnapshotFileRequest struct {
	File string `json:"file" validate:"required"`
}

// SaveStoredSnapshotRequest names a database-backed snapshot.
type SaveStoredSnapshotRequest struct {
	Name string `json:"name" validate:"required"`
}

// StoredSnapshotView summarises a database-backed snapshot.
type StoredSnapshotView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

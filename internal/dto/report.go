package dto

// GenerateRequest tunes one auto-generation run. Both fields are optional;
// defaults come from configuration.
type GenerateRequest struct {
	// IncludeSelection absorbs the in-progress selection session into the run,
	// implicitly committing it once its need is covered.
	IncludeSelection *bool `json:"includeSelection"`
	// Seed fixes the free-slot shuffle for reproducible runs.
	Seed *int64 `json:"seed"`
}

// GenerationReport summarises an auto-generation run. Unmet needs are
// informational: the run still completed.
type GenerationReport struct {
	Assigned          int            `json:"assigned"`
	UnmetNeeds        map[string]int `json:"unmetNeeds"`
	Messages          []string       `json:"messages"`
	PromotedFacultyID string         `json:"promotedFacultyId,omitempty"`
	FreeSlotsLeft     int            `json:"freeSlotsLeft"`
	NothingToDo       bool           `json:"nothingToDo"`
}

// ConflictReport lists slots where two or more faculty share a room, with the
// occupants per conflicted slot for display.
type ConflictReport struct {
	Slots   []string                 `json:"slots"`
	Details map[string][]FacultyView `json:"details"`
}

// Grid cell states, mirroring what the grid renderer distinguishes.
const (
	CellEmpty    = "empty"
	CellOccupied = "occupied"
	CellSelected = "selected"
	CellConflict = "conflict"
)

// GridCell is one cell of the rendered weekly grid.
type GridCell struct {
	State       string `json:"state"`
	FacultyID   string `json:"facultyId,omitempty"`
	FacultyName string `json:"facultyName,omitempty"`
	Subject     string `json:"subject,omitempty"`
	Room        string `json:"room,omitempty"`
}

// GridView is the full weekly grid plus the active selection, enough for a
// client to render without re-deriving timetable state.
type GridView struct {
	Days        []string            `json:"days"`
	HoursPerDay int                 `json:"hoursPerDay"`
	Cells       map[string]GridCell `json:"cells"`
	Selection   *SessionView        `json:"selection,omitempty"`
}

// SlotDetail describes a single inspected slot.
type SlotDetail struct {
	Slot     string       `json:"slot"`
	Occupied bool         `json:"occupied"`
	Occupant *FacultyView `json:"occupant,omitempty"`
}

package dto

// StartSelectionRequest opens a selection session for a new faculty. Hours
// arrives as raw form text; the engine parses and range-checks it so a bad
// value surfaces as a validation error rather than a JSON type error.
type StartSelectionRequest struct {
	Name    string `json:"name" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Hours   string `json:"hours" validate:"required"`
	Room    string `json:"room" validate:"required"`
}

// SessionView is the progress readout the collaborator renders after every
// selection mutation.
type SessionView struct {
	FacultyID     string   `json:"facultyId"`
	Name          string   `json:"name"`
	Subject       string   `json:"subject"`
	Room          string   `json:"room"`
	RequiredHours int      `json:"requiredHours"`
	ChosenCount   int      `json:"chosenCount"`
	ChosenSlots   []string `json:"chosenSlots"`
	Progress      string   `json:"progress"`
}

// FacultyView is the committed-faculty shape exposed to clients.
type FacultyView struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Subject       string   `json:"subject"`
	RequiredHours int      `json:"requiredHours"`
	Room          string   `json:"room"`
	AssignedSlots []string `json:"assignedSlots"`
}

package models

import (
	"fmt"
	"strings"
)

// CommitConflict describes one chosen slot that could not be committed.
// SameRoom distinguishes a true room clash from a slot that is merely taken
// by a faculty in a different room (a stale-session case: toggling already
// blocks occupied slots, but auto-generation may have filled the slot since).
type CommitConflict struct {
	Slot         string `json:"slot"`
	OccupantID   string `json:"occupant_id"`
	OccupantName string `json:"occupant_name"`
	OccupantRoom string `json:"occupant_room"`
	SameRoom     bool   `json:"same_room"`
}

func (c CommitConflict) String() string {
	if c.SameRoom {
		return fmt.Sprintf("room conflict at %s: %s (room %s)", c.Slot, c.OccupantName, c.OccupantRoom)
	}
	return fmt.Sprintf("slot %s already assigned to %s (different room %s)", c.Slot, c.OccupantName, c.OccupantRoom)
}

// CommitConflictError is returned when a commit collides with the timetable.
// The commit is atomic: when this error is returned nothing was mutated.
type CommitConflictError struct {
	Conflicts []CommitConflict `json:"conflicts"`
}

// Error implements the error interface, one line per conflict.
func (e *CommitConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	lines := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		lines = append(lines, c.String())
	}
	return strings.Join(lines, "; ")
}

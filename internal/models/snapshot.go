package models

import (
	"encoding/json"
	"time"
)

// StoredSnapshot is a named, database-backed copy of a serialized timetable
// snapshot. Payload holds the snapshot JSON document verbatim.
type StoredSnapshot struct {
	ID        string          `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Payload   json.RawMessage `db:"payload" json:"payload,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

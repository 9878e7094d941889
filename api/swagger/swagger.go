package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Timetable API",
        "description": "Weekly teaching-slot assignment and room-conflict detection service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Selection", "description": "Interactive slot selection for one faculty at a time"},
        {"name": "Generator", "description": "Round-robin auto-fill of outstanding slot needs"},
        {"name": "Conflicts", "description": "Room conflict detection"},
        {"name": "Faculty", "description": "Committed faculty roster"},
        {"name": "Timetable", "description": "Weekly grid views and downloads"},
        {"name": "Snapshots", "description": "Serialized scheduler state"}
    ],
    "paths": {
        "/selection": {
            "get": {
                "tags": ["Selection"],
                "summary": "Current selection session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "No active session"}
                }
            },
            "post": {
                "tags": ["Selection"],
                "summary": "Open a selection session for a new faculty",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StartSelectionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"},
                    "409": {"description": "A session is already active"}
                }
            }
        },
        "/selection/slots/{slotId}": {
            "post": {
                "tags": ["Selection"],
                "summary": "Select or deselect one slot",
                "parameters": [
                    {"name": "slotId", "in": "path", "required": true, "type": "string", "description": "Canonical slot form, e.g. Mon-3"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Slot occupied or quota reached"},
                    "412": {"description": "No active session"}
                }
            }
        },
        "/selection/commit": {
            "post": {
                "tags": ["Selection"],
                "summary": "Commit the active selection into the timetable",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Commit-time conflict, nothing written"},
                    "412": {"description": "Selection incomplete or no session"}
                }
            }
        },
        "/generate": {
            "post": {
                "tags": ["Generator"],
                "summary": "Auto-fill outstanding slot needs round-robin",
                "parameters": [
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/GenerateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/conflicts": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "Scan for slots where faculty share a room",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/conflicts/{slotId}": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "Faculty occupying one slot",
                "parameters": [
                    {"name": "slotId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Malformed slot identifier"}
                }
            }
        },
        "/faculties": {
            "get": {
                "tags": ["Faculty"],
                "summary": "Committed faculty roster",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetable/grid": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Full weekly grid for rendering",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetable/slots/{slotId}": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Inspect a single slot",
                "parameters": [
                    {"name": "slotId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Malformed slot identifier"}
                }
            }
        },
        "/timetable/export": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Download the weekly grid",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "400": {"description": "Unsupported format"}
                }
            }
        },
        "/reset": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Clear faculty, timetable, and any session",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/snapshot": {
            "get": {
                "tags": ["Snapshots"],
                "summary": "Serialize the current scheduler state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Snapshots"],
                "summary": "Replace scheduler state from a snapshot document",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Snapshot"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Malformed snapshot, state untouched"}
                }
            }
        },
        "/snapshot/files": {
            "get": {
                "tags": ["Snapshots"],
                "summary": "Snapshot files available for loading",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Snapshots"],
                "summary": "Write the current state to a named snapshot file",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SnapshotFileRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/snapshot/files/load": {
            "post": {
                "tags": ["Snapshots"],
                "summary": "Restore state from a named snapshot file",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SnapshotFileRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "File not found"}
                }
            }
        },
        "/snapshots": {
            "get": {
                "tags": ["Snapshots"],
                "summary": "Named snapshots stored in the database",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Snapshot database not configured"}
                }
            },
            "post": {
                "tags": ["Snapshots"],
                "summary": "Store the current state as a named database snapshot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveStoredSnapshotRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/snapshots/{id}/restore": {
            "post": {
                "tags": ["Snapshots"],
                "summary": "Restore state from a stored database snapshot",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Snapshot not found"}
                }
            }
        },
        "/snapshots/{id}": {
            "delete": {
                "tags": ["Snapshots"],
                "summary": "Delete a stored database snapshot",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Snapshot not found"}
                }
            }
        }
    },
    "definitions": {
        "StartSelectionRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "subject": {"type": "string"},
                "hours": {"type": "string", "description": "Required weekly hours, 1-40, sent as text"},
                "room": {"type": "string"}
            },
            "required": ["name", "subject", "hours", "room"]
        },
        "SessionView": {
            "type": "object",
            "properties": {
                "facultyId": {"type": "string"},
                "name": {"type": "string"},
                "subject": {"type": "string"},
                "room": {"type": "string"},
                "requiredHours": {"type": "integer"},
                "chosenCount": {"type": "integer"},
                "chosenSlots": {"type": "array", "items": {"type": "string"}},
                "progress": {"type": "string"}
            }
        },
        "FacultyView": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "subject": {"type": "string"},
                "requiredHours": {"type": "integer"},
                "room": {"type": "string"},
                "assignedSlots": {"type": "array", "items": {"type": "string"}}
            }
        },
        "GenerateRequest": {
            "type": "object",
            "properties": {
                "includeSelection": {"type": "boolean"},
                "seed": {"type": "integer"}
            }
        },
        "GenerationReport": {
            "type": "object",
            "properties": {
                "assigned": {"type": "integer"},
                "unmetNeeds": {"type": "object"},
                "messages": {"type": "array", "items": {"type": "string"}},
                "promotedFacultyId": {"type": "string"},
                "freeSlotsLeft": {"type": "integer"},
                "nothingToDo": {"type": "boolean"}
            }
        },
        "Snapshot": {
            "type": "object",
            "properties": {
                "version": {"type": "integer"},
                "savedAt": {"type": "string"},
                "faculty": {"type": "array", "items": {"$ref": "#/definitions/SnapshotFaculty"}},
                "timetable": {"type": "object", "description": "Slot to faculty-ID mapping"}
            },
            "required": ["version"]
        },
        "SnapshotFaculty": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "subject": {"type": "string"},
                "requiredHours": {"type": "integer"},
                "room": {"type": "string"},
                "slots": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["id", "name", "subject", "requiredHours", "room"]
        },
        "SnapshotFileRequest": {
            "type": "object",
            "properties": {
                "file": {"type": "string"}
            },
            "required": ["file"]
        },
        "SaveStoredSnapshotRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"}
            },
            "required": ["name"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}

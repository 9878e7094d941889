package export

import "fmt"

// Grid is the renderer-facing description of the weekly timetable: ordered
// day columns, a fixed number of hour rows, and occupied cells keyed by the
// canonical "<Day>-<hour>" slot form.
type Grid struct {
	Days  []string
	Hours int
	Cells map[string]Cell
}

// Cell carries what a single occupied slot shows in an export.
type Cell struct {
	FacultyName string
	Subject     string
	Room        string
	Conflicted  bool
}

func (g Grid) cellText(day string, hour int) string {
	cell, ok := g.Cells[fmt.Sprintf("%s-%d", day, hour)]
	if !ok {
		return ""
	}
	text := fmt.Sprintf("%s / %s / R:%s", cell.FacultyName, cell.Subject, cell.Room)
	if cell.Conflicted {
		text += " [CONFLICT]"
	}
	return text
}

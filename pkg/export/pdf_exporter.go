package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders a weekly grid into a landscape PDF table.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with the timetable grid. Conflicted cells are
// shaded so the printout matches what the UI highlights.
func (e *PDFExporter) Render(grid Grid, title string) ([]byte, error) {
	if len(grid.Days) == 0 || grid.Hours <= 0 {
		return nil, fmt.Errorf("pdf export requires at least one day and one hour")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	const hourColWidth = 18.0
	colWidth := (277.0 - hourColWidth) / float64(len(grid.Days))

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(hourColWidth, 8, "Hour", "1", 0, "C", false, 0, "")
	for _, day := range grid.Days {
		pdf.CellFormat(colWidth, 8, day, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for hour := 1; hour <= grid.Hours; hour++ {
		pdf.CellFormat(hourColWidth, 10, fmt.Sprintf("H%d", hour), "1", 0, "C", false, 0, "")
		for _, day := range grid.Days {
			cell, occupied := grid.Cells[fmt.Sprintf("%s-%d", day, hour)]
			fill := false
			if occupied && cell.Conflicted {
				pdf.SetFillColor(255, 160, 160)
				fill = true
			}
			pdf.CellFormat(colWidth, 10, grid.cellText(day, hour), "1", 0, "", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

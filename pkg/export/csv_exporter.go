package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVExporter renders a weekly grid into CSV bytes, one row per hour.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the grid.
func (e *CSVExporter) Render(grid Grid) ([]byte, error) {
	if len(grid.Days) == 0 || grid.Hours <= 0 {
		return nil, fmt.Errorf("csv export requires at least one day and one hour")
	}

	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	header := append([]string{"Hour"}, grid.Days...)
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for hour := 1; hour <= grid.Hours; hour++ {
		record := make([]string, 0, len(grid.Days)+1)
		record = append(record, fmt.Sprintf("H%d", hour))
		for _, day := range grid.Days {
			record = append(record, grid.cellText(day, hour))
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

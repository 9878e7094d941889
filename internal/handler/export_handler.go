package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campushq/timetable-api/internal/dto"
	appErrors "github.com/campushq/timetable-api/pkg/errors"
	"github.com/campushq/timetable-api/pkg/export"
	"github.com/campushq/timetable-api/pkg/response"
)

type gridSource interface {
	Grid() *dto.GridView
}

type gridRenderer interface {
	Render(grid export.Grid) ([]byte, error)
}

type pdfRenderer interface {
	Render(grid export.Grid, title string) ([]byte, error)
}

// ExportHandler streams the weekly grid as a downloadable CSV or PDF.
type ExportHandler struct {
	engine gridSource
	csv    gridRenderer
	pdf    pdfRenderer
	logger *zap.Logger
}

// NewExportHandler constructs the handler.
func NewExportHandler(engine gridSource, csv gridRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportHandler{engine: engine, csv: csv, pdf: pdf, logger: logger}
}

// ExportGrid godoc
// @Summary Download the weekly grid
// @Tags Timetable
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /timetable/export [get]
func (h *ExportHandler) ExportGrid(c *gin.Context) {
	grid := toExportGrid(h.engine.Grid())
	stamp := time.Now().Format("20060102-150405")

	switch format := c.DefaultQuery("format", "csv"); format {
	case "csv":
		data, err := h.csv.Render(grid)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=timetable-%s.csv", stamp))
		c.Data(http.StatusOK, "text/csv", data)
	case "pdf":
		data, err := h.pdf.Render(grid, "Weekly Timetable")
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=timetable-%s.pdf", stamp))
		c.Data(http.StatusOK, "application/pdf", data)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format)))
	}
}

func toExportGrid(view *dto.GridView) export.Grid {
	grid := export.Grid{
		Days:  view.Days,
		Hours: view.HoursPerDay,
		Cells: make(map[string]export.Cell, len(view.Cells)),
	}
	for key, cell := range view.Cells {
		if cell.State != dto.CellOccupied && cell.State != dto.CellConflict {
			continue
		}
		grid.Cells[key] = export.Cell{
			FacultyName: cell.FacultyName,
			Subject:     cell.Subject,
			Room:        cell.Room,
			Conflicted:  cell.State == dto.CellConflict,
		}
	}
	return grid
}

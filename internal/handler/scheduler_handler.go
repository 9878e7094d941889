package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campushq/timetable-api/internal/dto"
	"github.com/campushq/timetable-api/pkg/cache"
	appErrors "github.com/campushq/timetable-api/pkg/errors"
	"github.com/campushq/timetable-api/pkg/response"
)

type schedulerEngine interface {
	StartSelection(req dto.StartSelectionRequest) (*dto.SessionView, error)
	ToggleSlot(slot string) (*dto.SessionView, error)
	CommitSelection() (*dto.FacultyView, error)
	Session() *dto.SessionView
	AutoGenerate(req dto.GenerateRequest) *dto.GenerationReport
	DetectRoomConflicts() *dto.ConflictReport
	FacultiesAt(slot string) ([]dto.FacultyView, error)
	Faculties() []dto.FacultyView
	SlotDetail(slot string) (*dto.SlotDetail, error)
	Grid() *dto.GridView
	Reset()
}

// SchedulerHandler exposes the slot-assignment engine over HTTP.
type SchedulerHandler struct {
	engine schedulerEngine
	grids  *cache.GridCache
	logger *zap.Logger
}

// NewSchedulerHandler constructs the handler. The grid cache may be nil.
func NewSchedulerHandler(engine schedulerEngine, grids *cache.GridCache, logger *zap.Logger) *SchedulerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchedulerHandler{engine: engine, grids: grids, logger: logger}
}

// StartSelection godoc
// @Summary Open a selection session for a new faculty
// @Tags Selection
// @Accept json
// @Produce json
// @Param payload body dto.StartSelectionRequest true "Faculty form fields"
// @Success 201 {object} response.Envelope
// @Router /selection [post]
func (h *SchedulerHandler) StartSelection(c *gin.Context) {
	var req dto.StartSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid selection payload"))
		return
	}
	view, err := h.engine.StartSelection(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.invalidateGrid(c)
	response.Created(c, view)
}

// Session godoc
// @Summary Current selection session, if any
// @Tags Selection
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /selection [get]
func (h *SchedulerHandler) Session(c *gin.Context) {
	view := h.engine.Session()
	if view == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNoActiveSelection, ""))
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// ToggleSlot godoc
// @Summary Select or deselect one slot for the active session
// @Tags Selection
// @Produce json
// @Param slotId path string true "Slot identifier, e.g. Mon-3"
// @Success 200 {object} response.Envelope
// @Router /selection/slots/{slotId} [post]
func (h *SchedulerHandler) ToggleSlot(c *gin.Context) {
	view, err := h.engine.ToggleSlot(c.Param("slotId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.invalidateGrid(c)
	response.JSON(c, http.StatusOK, view)
}

// CommitSelection godoc
// @Summary Commit the active selection into the timetable
// @Tags Selection
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /selection/commit [post]
func (h *SchedulerHandler) CommitSelection(c *gin.Context) {
	faculty, err := h.engine.CommitSelection()
	if err != nil {
		response.Error(c, err)
		return
	}
	h.invalidateGrid(c)
	response.Created(c, faculty)
}

// Generate godoc
// @Summary Auto-fill outstanding slot needs round-robin
// @Tags Generator
// @Accept json
// @Produce json
// @Param payload body dto.GenerateRequest false "Generation options"
// @Success 200 {object} response.Envelope
// @Router /generate [post]
func (h *SchedulerHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
			return
		}
	}
	report := h.engine.AutoGenerate(req)
	h.invalidateGrid(c)
	response.JSON(c, http.StatusOK, report)
}

// Conflicts godoc
// @Summary Scan for room conflicts
// @Tags Conflicts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /conflicts [get]
func (h *SchedulerHandler) Conflicts(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.engine.DetectRoomConflicts())
}

// FacultiesAtSlot godoc
// @Summary Faculty occupying one slot
// @Tags Conflicts
// @Produce json
// @Param slotId path string true "Slot identifier, e.g. Tue-3"
// @Success 200 {object} response.Envelope
// @Router /conflicts/{slotId} [get]
func (h *SchedulerHandler) FacultiesAtSlot(c *gin.Context) {
	views, err := h.engine.FacultiesAt(c.Param("slotId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, views)
}

// Faculties godoc
// @Summary Committed faculty roster
// @Tags Faculty
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /faculties [get]
func (h *SchedulerHandler) Faculties(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.engine.Faculties())
}

// SlotDetail godoc
// @Summary Inspect a single timetable slot
// @Tags Timetable
// @Produce json
// @Param slotId path string true "Slot identifier"
// @Success 200 {object} response.Envelope
// @Router /timetable/slots/{slotId} [get]
func (h *SchedulerHandler) SlotDetail(c *gin.Context) {
	detail, err := h.engine.SlotDetail(c.Param("slotId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail)
}

// Grid godoc
// @Summary Full weekly grid for rendering
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetable/grid [get]
func (h *SchedulerHandler) Grid(c *gin.Context) {
	var cached dto.GridView
	hit, err := h.grids.Get(c.Request.Context(), &cached)
	if err != nil {
		h.logger.Warn("grid_cache_read_failed", zap.Error(err))
	}
	if hit {
		response.JSON(c, http.StatusOK, cached, map[string]interface{}{"cache": "hit"})
		return
	}

	grid := h.engine.Grid()
	if err := h.grids.Set(c.Request.Context(), grid); err != nil {
		h.logger.Warn("grid_cache_write_failed", zap.Error(err))
	}
	response.JSON(c, http.StatusOK, grid)
}

// Reset godoc
// @Summary Clear the faculty list, timetable, and any session
// @Tags Timetable
// @Success 204
// @Router /reset [post]
func (h *SchedulerHandler) Reset(c *gin.Context) {
	h.engine.Reset()
	h.invalidateGrid(c)
	response.NoContent(c)
}

func (h *SchedulerHandler) invalidateGrid(c *gin.Context) {
	if err := h.grids.Invalidate(c.Request.Context()); err != nil {
		h.logger.Warn("grid_cache_invalidate_failed", zap.Error(err))
	}
}

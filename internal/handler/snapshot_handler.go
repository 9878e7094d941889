package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campushq/timetable-api/internal/dto"
	"github.com/campushq/timetable-api/internal/models"
	"github.com/campushq/timetable-api/pkg/cache"
	appErrors "github.com/campushq/timetable-api/pkg/errors"
	"github.com/campushq/timetable-api/pkg/response"
)

type snapshotEngine interface {
	ExportSnapshot() *dto.Snapshot
	ImportSnapshot(snap dto.Snapshot) error
}

type snapshotFileStore interface {
	Save(name string, data []byte) (string, error)
	Load(name string) ([]byte, error)
	List() ([]string, error)
}

type snapshotRepository interface {
	Create(ctx context.Context, snap *models.StoredSnapshot) error
	List(ctx context.Context) ([]models.StoredSnapshot, error)
	FindByID(ctx context.Context, id string) (*models.StoredSnapshot, error)
	Delete(ctx context.Context, id string) error
}

// SnapshotHandler serves snapshot export/import, file persistence, and the
// database-backed named snapshot catalogue.
type SnapshotHandler struct {
	engine snapshotEngine
	files  snapshotFileStore
	repo   snapshotRepository
	grids  *cache.GridCache
	logger *zap.Logger
}

// NewSnapshotHandler constructs the handler. The repository may be nil when no
// database is configured; the catalogue endpoints then report a precondition
// failure instead of panicking.
func NewSnapshotHandler(engine snapshotEngine, files snapshotFileStore, repo snapshotRepository, grids *cache.GridCache, logger *zap.Logger) *SnapshotHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotHandler{engine: engine, files: files, repo: repo, grids: grids, logger: logger}
}

// Export godoc
// @Summary Serialize the current scheduler state
// @Tags Snapshots
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /snapshot [get]
func (h *SnapshotHandler) Export(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.engine.ExportSnapshot())
}

// Import godoc
// @Summary Replace scheduler state from a snapshot document
// @Tags Snapshots
// @Accept json
// @Produce json
// @Param payload body dto.Snapshot true "Snapshot document"
// @Success 204
// @Router /snapshot [post]
func (h *SnapshotHandler) Import(c *gin.Context) {
	var snap dto.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrFormat.Code, http.StatusBadRequest, "snapshot body is not valid JSON"))
		return
	}
	if err := h.engine.ImportSnapshot(snap); err != nil {
		response.Error(c, err)
		return
	}
	h.invalidateGrid(c)
	response.NoContent(c)
}

// SaveFile godoc
// @Summary Write the current state to a named snapshot file
// @Tags Snapshots
// @Accept json
// @Produce json
// @Param payload body dto.SnapshotFileRequest true "Target file name"
// @Success 201 {object} response.Envelope
// @Router /snapshot/files [post]
func (h *SnapshotHandler) SaveFile(c *gin.Context) {
	var req dto.SnapshotFileRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.File == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file name is required"))
		return
	}

	data, err := json.MarshalIndent(h.engine.ExportSnapshot(), "", "  ")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode snapshot"))
		return
	}
	name, err := h.files.Save(req.File, data)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "save snapshot file"))
		return
	}

	h.logger.Info("snapshot_file_saved", zap.String("file", name))
	response.Created(c, gin.H{"file": name})
}

// LoadFile godoc
// @Summary Restore state from a named snapshot file
// @Tags Snapshots
// @Accept json
// @Produce json
// @Param payload body dto.SnapshotFileRequest true "Source file name"
// @Success 204
// @Router /snapshot/files/load [post]
func (h *SnapshotHandler) LoadFile(c *gin.Context) {
	var req dto.SnapshotFileRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.File == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file name is required"))
		return
	}

	data, err := h.files.Load(req.File)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "snapshot file not found"))
		return
	}
	var snap dto.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrFormat.Code, appErrors.ErrFormat.Status, "snapshot file is not valid JSON"))
		return
	}
	if err := h.engine.ImportSnapshot(snap); err != nil {
		response.Error(c, err)
		return
	}

	h.invalidateGrid(c)
	h.logger.Info("snapshot_file_loaded", zap.String("file", req.File))
	response.NoContent(c)
}

// ListFiles godoc
// @Summary Snapshot files available for loading
// @Tags Snapshots
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /snapshot/files [get]
func (h *SnapshotHandler) ListFiles(c *gin.Context) {
	names, err := h.files.List()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list snapshot files"))
		return
	}
	response.JSON(c, http.StatusOK, names, map[string]interface{}{"total": len(names)})
}

// ListStored godoc
// @Summary Named snapshots stored in the database
// @Tags Snapshots
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /snapshots [get]
func (h *SnapshotHandler) ListStored(c *gin.Context) {
	if h.repo == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrPreconditionFailed, "snapshot database is not configured"))
		return
	}
	records, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list snapshots"))
		return
	}
	views := make([]dto.StoredSnapshotView, 0, len(records))
	for _, rec := range records {
		views = append(views, dto.StoredSnapshotView{ID: rec.ID, Name: rec.Name, CreatedAt: rec.CreatedAt})
	}
	response.JSON(c, http.StatusOK, views, map[string]interface{}{"total": len(views)})
}

// SaveStored godoc
// @Summary Store the current state as a named database snapshot
// @Tags Snapshots
// @Accept json
// @Produce json
// @Param payload body dto.SaveStoredSnapshotRequest true "Snapshot name"
// @Success 201 {object} response.Envelope
// @Router /snapshots [post]
func (h *SnapshotHandler) SaveStored(c *gin.Context) {
	if h.repo == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrPreconditionFailed, "snapshot database is not configured"))
		return
	}
	var req dto.SaveStoredSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "snapshot name is required"))
		return
	}

	payload, err := json.Marshal(h.engine.ExportSnapshot())
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode snapshot"))
		return
	}
	record := &models.StoredSnapshot{Name: req.Name, Payload: payload}
	if err := h.repo.Create(c.Request.Context(), record); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store snapshot"))
		return
	}

	h.logger.Info("snapshot_stored", zap.String("id", record.ID), zap.String("name", record.Name))
	response.Created(c, dto.StoredSnapshotView{ID: record.ID, Name: record.Name, CreatedAt: record.CreatedAt})
}

// Restore godoc
// @Summary Restore state from a stored database snapshot
// @Tags Snapshots
// @Produce json
// @Param id path string true "Snapshot ID"
// @Success 204
// @Router /snapshots/{id}/restore [post]
func (h *SnapshotHandler) Restore(c *gin.Context) {
	if h.repo == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrPreconditionFailed, "snapshot database is not configured"))
		return
	}
	record, err := h.repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "snapshot not found"))
			return
		}
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load snapshot"))
		return
	}

	var snap dto.Snapshot
	if err := json.Unmarshal(record.Payload, &snap); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrFormat.Code, appErrors.ErrFormat.Status, "stored snapshot is not valid JSON"))
		return
	}
	if err := h.engine.ImportSnapshot(snap); err != nil {
		response.Error(c, err)
		return
	}

	h.invalidateGrid(c)
	h.logger.Info("snapshot_restored", zap.String("id", record.ID), zap.String("name", record.Name))
	response.NoContent(c)
}

// DeleteStored godoc
// @Summary Delete a stored database snapshot
// @Tags Snapshots
// @Param id path string true "Snapshot ID"
// @Success 204
// @Router /snapshots/{id} [delete]
func (h *SnapshotHandler) DeleteStored(c *gin.Context) {
	if h.repo == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrPreconditionFailed, "snapshot database is not configured"))
		return
	}
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "snapshot not found"))
			return
		}
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "delete snapshot"))
		return
	}
	response.NoContent(c)
}

func (h *SnapshotHandler) invalidateGrid(c *gin.Context) {
	if err := h.grids.Invalidate(c.Request.Context()); err != nil {
		h.logger.Warn("grid_cache_invalidate_failed", zap.Error(err))
	}
}

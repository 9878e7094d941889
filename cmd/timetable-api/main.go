package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/campushq/timetable-api/api/swagger"
	"github.com/campushq/timetable-api/internal/handler"
	"github.com/campushq/timetable-api/internal/middleware"
	"github.com/campushq/timetable-api/internal/repository"
	"github.com/campushq/timetable-api/internal/service"
	"github.com/campushq/timetable-api/pkg/cache"
	"github.com/campushq/timetable-api/pkg/config"
	"github.com/campushq/timetable-api/pkg/database"
	"github.com/campushq/timetable-api/pkg/export"
	"github.com/campushq/timetable-api/pkg/logger"
	corsmiddleware "github.com/campushq/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campushq/timetable-api/pkg/middleware/requestid"
	"github.com/campushq/timetable-api/pkg/storage"
)

// @title Timetable API
// @version 1.0.0
// @description Weekly teaching-slot assignment and room-conflict detection service
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	scheduler := service.NewSchedulerService(validate, logr, metrics, service.SchedulerConfig{
		Seed:             cfg.Scheduler.Seed,
		IncludeSelection: cfg.Scheduler.IncludeSelection,
	})

	files, err := storage.NewSnapshotStore(cfg.Snapshots.Dir)
	if err != nil {
		logr.Fatal("snapshot store init failed", zap.Error(err))
	}

	// Postgres backs the named snapshot catalogue only; the engine itself is
	// in-memory. The service stays up without it.
	var snapshotRepo *repository.SnapshotRepository
	dbReady := false
	if cfg.Snapshots.DBEnabled {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Warn("postgres unavailable, snapshot catalogue disabled", zap.Error(err))
		} else {
			snapshotRepo = repository.NewSnapshotRepository(db)
			dbReady = true
		}
	}

	var grids *cache.GridCache
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, grid cache disabled", zap.Error(err))
	} else {
		grids = cache.NewGridCache(redisClient, cfg.Scheduler.GridCacheTTL)
	}

	schedulerHandler := handler.NewSchedulerHandler(scheduler, grids, logr)
	exportHandler := handler.NewExportHandler(scheduler, export.NewCSVExporter(), export.NewPDFExporter(), logr)
	var snapshotHandler *handler.SnapshotHandler
	if snapshotRepo != nil {
		snapshotHandler = handler.NewSnapshotHandler(scheduler, files, snapshotRepo, grids, logr)
	} else {
		snapshotHandler = handler.NewSnapshotHandler(scheduler, files, nil, grids, logr)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"database":  dbReady,
			"gridCache": grids != nil,
		})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/selection", schedulerHandler.StartSelection)
		api.GET("/selection", schedulerHandler.Session)
		api.POST("/selection/slots/:slotId", schedulerHandler.ToggleSlot)
		api.POST("/selection/commit", schedulerHandler.CommitSelection)

		api.POST("/generate", schedulerHandler.Generate)

		api.GET("/conflicts", schedulerHandler.Conflicts)
		api.GET("/conflicts/:slotId", schedulerHandler.FacultiesAtSlot)

		api.GET("/faculties", schedulerHandler.Faculties)

		api.GET("/timetable/grid", schedulerHandler.Grid)
		api.GET("/timetable/slots/:slotId", schedulerHandler.SlotDetail)
		api.GET("/timetable/export", exportHandler.ExportGrid)

		api.POST("/reset", schedulerHandler.Reset)

		api.GET("/snapshot", snapshotHandler.Export)
		api.POST("/snapshot", snapshotHandler.Import)
		api.GET("/snapshot/files", snapshotHandler.ListFiles)
		api.POST("/snapshot/files", snapshotHandler.SaveFile)
		api.POST("/snapshot/files/load", snapshotHandler.LoadFile)

		api.GET("/snapshots", snapshotHandler.ListStored)
		api.POST("/snapshots", snapshotHandler.SaveStored)
		api.POST("/snapshots/:id/restore", snapshotHandler.Restore)
		api.DELETE("/snapshots/:id", snapshotHandler.DeleteStored)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

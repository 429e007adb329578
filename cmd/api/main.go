package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/acadhub/horarios-api/api/swagger"
	"github.com/acadhub/horarios-api/internal/handler"
	"github.com/acadhub/horarios-api/internal/middleware"
	"github.com/acadhub/horarios-api/internal/repository"
	"github.com/acadhub/horarios-api/internal/service"
	"github.com/acadhub/horarios-api/pkg/cache"
	"github.com/acadhub/horarios-api/pkg/config"
	"github.com/acadhub/horarios-api/pkg/database"
	"github.com/acadhub/horarios-api/pkg/logger"
	corsmiddleware "github.com/acadhub/horarios-api/pkg/middleware/cors"
	reqidmiddleware "github.com/acadhub/horarios-api/pkg/middleware/requestid"
)

// @title Horarios API
// @version 1.0.0
// @description Academic timetable assignment engine
// @BasePath /api
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// The cache repository degrades to a no-op without a client.
		logr.Sugar().Warnw("redis unavailable, caching and distributed locks disabled", "error", err)
		redisClient = nil
	}

	unitRepo := repository.NewAcademicUnitRepository(db)
	careerRepo := repository.NewCareerRepository(db)
	periodRepo := repository.NewPeriodRepository(db)
	blockRepo := repository.NewTimeBlockRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	classroomRepo := repository.NewClassroomRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	restrictionRepo := repository.NewRestrictionRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	validate := validator.New()
	metrics := service.NewMetricsService()

	catalogSvc := service.NewCatalogService(unitRepo, careerRepo, periodRepo, blockRepo, validate, logr)
	rosterSvc := service.NewRosterService(teacherRepo, subjectRepo, classroomRepo, groupRepo, periodRepo, validate, logr)
	availabilitySvc := service.NewAvailabilityService(availabilityRepo, teacherRepo, periodRepo, blockRepo, validate, logr, cfg.Import.MaxRows)
	restrictionSvc := service.NewRestrictionService(restrictionRepo, validate, logr)
	assignmentSvc := service.NewAssignmentService(
		assignmentRepo, availabilityRepo, restrictionRepo,
		groupRepo, subjectRepo, teacherRepo, classroomRepo, blockRepo, careerRepo,
		cacheRepo, validate, logr,
	)
	generatorSvc := service.NewGeneratorService(
		periodRepo, groupRepo, subjectRepo, teacherRepo, classroomRepo, blockRepo,
		availabilityRepo, restrictionRepo, assignmentRepo,
		cacheRepo, metrics, validate, logr,
		service.GeneratorConfig{
			MaxCandidatesPerUnit: cfg.Scheduler.MaxCandidatesPerUnit,
			LockTTL:              cfg.Scheduler.LockTTL,
		},
	)
	reportSvc := service.NewScheduleReportService(
		assignmentRepo, blockRepo, groupRepo, subjectRepo, teacherRepo, classroomRepo, periodRepo,
		cacheRepo, cfg.Scheduler.GridCacheTTL, logr,
	)
	exportSvc := service.NewExportService(
		reportSvc, groupRepo, periodRepo, nil, nil, cacheRepo,
		service.ExportServiceConfig{
			WorkerCount:   cfg.Export.WorkerCount,
			AsyncRowLimit: cfg.Export.AsyncRowLimit,
		},
		logr,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exportSvc.Start(ctx)
	defer exportSvc.Stop()

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
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Catalog:      handler.NewCatalogHandler(catalogSvc),
		Roster:       handler.NewRosterHandler(rosterSvc),
		Availability: handler.NewAvailabilityHandler(availabilitySvc),
		Restriction:  handler.NewRestrictionHandler(restrictionSvc),
		Assignment:   handler.NewAssignmentHandler(assignmentSvc, reportSvc),
		Generator:    handler.NewGeneratorHandler(generatorSvc),
		Export:       handler.NewExportHandler(exportSvc),
	}, cfg.JWT.Secret, metrics)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/eladkar/semester-planner-api/api/swagger"
	"github.com/eladkar/semester-planner-api/internal/handler"
	"github.com/eladkar/semester-planner-api/internal/middleware"
	"github.com/eladkar/semester-planner-api/internal/repository"
	"github.com/eladkar/semester-planner-api/internal/service"
	"github.com/eladkar/semester-planner-api/pkg/cache"
	"github.com/eladkar/semester-planner-api/pkg/config"
	"github.com/eladkar/semester-planner-api/pkg/database"
	"github.com/eladkar/semester-planner-api/pkg/jobs"
	"github.com/eladkar/semester-planner-api/pkg/logger"
	corsmiddleware "github.com/eladkar/semester-planner-api/pkg/middleware/cors"
	reqidmiddleware "github.com/eladkar/semester-planner-api/pkg/middleware/requestid"
	"github.com/eladkar/semester-planner-api/pkg/storage"
)

// @title Semester Planner API
// @version 1.0.0
// @description Constraint-solving schedule composer for semester course registration
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	// Redis is optional: without it the planner runs uncached.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, compose results will not be cached", zap.Error(err))
		redisClient = nil
	}

	validate := validator.New()

	sectionRepo := repository.NewSectionRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	prerequisiteRepo := repository.NewPrerequisiteRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Planner.ResultCacheTTL, logr, redisClient != nil)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	plannerSvc := service.NewPlannerService(sectionRepo, preferenceRepo, enrollmentRepo, settingsRepo, cacheSvc, metricsSvc, cfg.Planner, validate, logr)
	settingsSvc := service.NewSettingsService(settingsRepo, preferenceRepo, plannerSvc, validate, logr)
	prerequisiteSvc := service.NewPrerequisiteService(prerequisiteRepo, validate, logr)

	var exportSvc *service.ExportService
	var exportJobSvc *service.ExportJobService
	var exportQueue *jobs.Queue
	if cfg.Export.Enabled {
		exportSvc = service.NewExportService(plannerSvc, validate, logr)

		exportFiles, err := storage.NewLocalStorage(cfg.Export.StorageDir)
		if err != nil {
			logr.Fatal("failed to init export storage", zap.Error(err))
		}
		signer := storage.NewSignedURLSigner(cfg.JWT.Secret, cfg.Export.SignedURLTTL)
		exportJobRepo := repository.NewExportJobRepository(db)
		exportJobSvc = service.NewExportJobService(exportJobRepo, exportFiles, signer, exportSvc, service.ExportJobConfig{
			DownloadPath:    cfg.APIPrefix + "/planner/export/download",
			ResultTTL:       cfg.Export.ResultTTL,
			CleanupInterval: cfg.Export.CleanupInterval,
		}, validate, logr)

		exportQueue = jobs.NewQueue("schedule_export", exportJobSvc.Process, jobs.QueueConfig{
			Workers: cfg.Export.Workers,
			Logger:  logr,
		})
		exportJobSvc.SetDispatcher(exportQueue)
		exportQueue.Start(context.Background())
		defer exportQueue.Stop()

		if err := exportJobSvc.RecoverPendingJobs(context.Background()); err != nil {
			logr.Warn("failed to recover pending export jobs", zap.Error(err))
		}
		exportJobSvc.StartCleanup(context.Background())
	}

	authHandler := handler.NewAuthHandler(authSvc)
	plannerHandler := newPlannerHandler(plannerSvc, exportSvc, settingsSvc)
	prerequisiteHandler := handler.NewPrerequisiteHandler(prerequisiteSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))
	protected.GET("/auth/me", authHandler.Me)
	protected.POST("/planner/compose", plannerHandler.Compose)
	protected.POST("/planner/check", plannerHandler.Check)
	protected.POST("/planner/export", plannerHandler.Export)
	protected.GET("/planner/settings", plannerHandler.GetSettings)
	protected.PUT("/planner/settings", plannerHandler.UpdateSettings)
	protected.GET("/planner/preferences", plannerHandler.GetPreferences)
	protected.PUT("/planner/preferences", plannerHandler.ReplacePreferences)
	protected.POST("/prerequisites/blocked", prerequisiteHandler.Blocked)

	if exportJobSvc != nil {
		exportJobHandler := handler.NewExportJobHandler(exportJobSvc)
		protected.POST("/planner/export/jobs", exportJobHandler.Create)
		protected.GET("/planner/export/jobs/:id", exportJobHandler.Status)
		// Token-authenticated so finished exports can be fetched without a session.
		api.GET("/planner/export/download", exportJobHandler.Download)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "export_enabled", cfg.Export.Enabled)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// newPlannerHandler keeps the export interface nil when export is disabled
// so the handler can answer with a precondition failure.
func newPlannerHandler(planner *service.PlannerService, export *service.ExportService, settings *service.SettingsService) *handler.PlannerHandler {
	if export == nil {
		return handler.NewPlannerHandler(planner, nil, settings)
	}
	return handler.NewPlannerHandler(planner, export, settings)
}

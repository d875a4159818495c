package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/akademix/jadwal-api/api/swagger"
	"github.com/akademix/jadwal-api/internal/handler"
	"github.com/akademix/jadwal-api/internal/middleware"
	"github.com/akademix/jadwal-api/internal/repository"
	"github.com/akademix/jadwal-api/internal/service"
	"github.com/akademix/jadwal-api/pkg/cache"
	"github.com/akademix/jadwal-api/pkg/config"
	"github.com/akademix/jadwal-api/pkg/logger"
	corsmiddleware "github.com/akademix/jadwal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/akademix/jadwal-api/pkg/middleware/requestid"
)

// @title Jadwal API
// @version 1.0.0
// @description Course scheduling with conflict detection and resolution
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

	metrics := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Dashboard.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		} else {
			repo := repository.NewCacheRepository(redisClient, logr)
			defer repo.Close() //nolint:errcheck
			cacheRepo = repo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, cacheRepo != nil)

	krsSvc := service.NewKRSService(cfg.KRS, logr)
	krsSvc.Start(context.Background())
	defer krsSvc.Stop()

	validate := validator.New()
	schedulingSvc := service.NewSchedulingService(service.SchedulingServiceParams{
		KRS:       krsSvc,
		Cache:     cacheSvc,
		Metrics:   metrics,
		Validator: validate,
		Logger:    logr,
	})
	suggestionSvc := service.NewSuggestionService(schedulingSvc, logr)
	dashboardSvc := service.NewDashboardService(schedulingSvc, cacheSvc, cfg.Dashboard.CacheTTL, logr)

	roomHandler := handler.NewRoomHandler(schedulingSvc)
	scheduleHandler := handler.NewScheduleHandler(schedulingSvc)
	conflictHandler := handler.NewConflictHandler(schedulingSvc)
	suggestionHandler := handler.NewSuggestionHandler(suggestionSvc, validate)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	observerHandler := handler.NewObserverHandler(schedulingSvc, validate, logr)
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/rooms", roomHandler.Create)
		api.GET("/rooms", roomHandler.List)
		api.GET("/rooms/:roomId", roomHandler.Get)

		api.POST("/schedules", scheduleHandler.Create)
		api.GET("/schedules", scheduleHandler.List)
		api.GET("/schedules/:scheduleId", scheduleHandler.Get)
		api.PUT("/schedules/:scheduleId", scheduleHandler.Update)
		api.DELETE("/schedules/:scheduleId", scheduleHandler.Delete)
		api.GET("/schedules/:scheduleId/conflicts", conflictHandler.ForSchedule)

		api.GET("/conflicts", conflictHandler.List)
		api.GET("/conflicts/summary", conflictHandler.Summary)

		api.POST("/suggestions", suggestionHandler.Suggest)

		api.GET("/dashboard", dashboardHandler.Summary)
		api.GET("/dashboard/conflicts", dashboardHandler.ConflictReport)
		api.GET("/dashboard/conflicts/export", dashboardHandler.ExportConflicts)
		api.GET("/dashboard/rooms/:roomId", dashboardHandler.RoomSchedule)

		api.POST("/observers", observerHandler.Register)
		api.GET("/observers", observerHandler.List)
		api.DELETE("/observers/:observerId", observerHandler.Unregister)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

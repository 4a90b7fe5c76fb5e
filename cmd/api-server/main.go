package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/stnakamura/gyocal-api/api/swagger"
	"github.com/stnakamura/gyocal-api/internal/extraction"
	"github.com/stnakamura/gyocal-api/internal/handler"
	"github.com/stnakamura/gyocal-api/internal/middleware"
	"github.com/stnakamura/gyocal-api/internal/service"
	"github.com/stnakamura/gyocal-api/pkg/config"
	"github.com/stnakamura/gyocal-api/pkg/logger"
	corsmiddleware "github.com/stnakamura/gyocal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/stnakamura/gyocal-api/pkg/middleware/requestid"
)

// @title GyoCal Import API
// @version 0.1.0
// @description Extracts school annual event schedules from scanned documents and commits them to Google Calendar
// @BasePath /
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

	metricsSvc := service.NewMetricsService()

	extractor := extraction.NewClient(cfg.Gemini, logr)
	extractSvc := service.NewExtractService(extractor, cfg.Import, nil, metricsSvc, logr)

	var pdfFont []byte
	if cfg.Export.PDFFontPath != "" {
		pdfFont, err = os.ReadFile(cfg.Export.PDFFontPath)
		if err != nil {
			logr.Sugar().Warnw("pdf export font unavailable, non-Latin text will not render",
				"path", cfg.Export.PDFFontPath, "error", err)
			pdfFont = nil
		}
	}
	exportSvc := service.NewExportService(pdfFont, nil, logr)

	commitSvc, err := service.NewCommitService(cfg.Calendar, metricsSvc, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to init commit engine", "error", err)
	}
	resolver := service.NewBackendResolver(logr)

	scheduleHandler := handler.NewScheduleHandler(extractSvc, exportSvc)
	calendarHandler := handler.NewCalendarHandler(commitSvc, resolver)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/schedule/parse", scheduleHandler.Parse)
		api.POST("/schedule/export", scheduleHandler.Export)
		api.POST("/calendar/events/import", calendarHandler.Import)
		api.GET("/calendar/events/upcoming", calendarHandler.Upcoming)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

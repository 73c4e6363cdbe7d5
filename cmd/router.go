package main

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/angeloszaimis/host-health/config"
	"github.com/angeloszaimis/host-health/internal/handler"
	"github.com/angeloszaimis/host-health/internal/metrics"
)

func setupRouter(cfg *config.Config, log *slog.Logger, dashboardHandler *handler.DashboardHandler, metricsCollector *metrics.Collector) *gin.Engine {
	if cfg.Server.Environment == config.EnvProd {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(handler.RequestLogger(log), handler.Recovery(log))

	router.GET("/", dashboardHandler.Page)
	router.GET("/metrics", gin.WrapH(metricsCollector.PrometheusHandler()))

	api := router.Group("/api")
	api.POST("/trigger", dashboardHandler.Trigger)
	api.GET("/hosts", dashboardHandler.Hosts)
	api.GET("/stats", dashboardHandler.Stats)

	return router
}

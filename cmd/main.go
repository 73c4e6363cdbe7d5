package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/angeloszaimis/host-health/config"
	"github.com/angeloszaimis/host-health/internal/dashboard"
	"github.com/angeloszaimis/host-health/internal/handler"
	"github.com/angeloszaimis/host-health/internal/healthcheck"
	"github.com/angeloszaimis/host-health/internal/httpserver"
	"github.com/angeloszaimis/host-health/internal/metrics"
	"github.com/angeloszaimis/host-health/internal/monitor"
	"github.com/angeloszaimis/host-health/internal/registry"
	"github.com/angeloszaimis/host-health/pkg/logger"
)

const metricsBufferSize = 1000

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, true, cfg.Server.Environment)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	collector := metrics.NewCollector(metricsBufferSize, log)
	collector.Start(ctx)

	mon, interval, err := initializeMonitor(cfg, log, collector)
	if err != nil {
		log.Error("Failed to initialize monitor", slog.Any("err", err))
		os.Exit(1)
	}

	// The table exists before the first request so GET / never sees an empty page.
	mon.Render()
	go mon.Run(ctx, interval)

	dashboardHandler := handler.NewDashboardHandler(log, mon, collector)
	router := setupRouter(cfg, log, dashboardHandler, collector)

	srv, err := httpserver.New(cfg.Server.Address, router)
	if err != nil {
		log.Error("Failed to create server", slog.Any("err", err))
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)

	go func() {
		log.Info("Serving dashboard", slog.String("addr", cfg.Server.Address))
		srvErrCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("Error during shutdown", slog.Any("err", err))
		}
	case err := <-srvErrCh:
		if err != nil {
			log.Error("Error starting server", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

func initializeMonitor(cfg *config.Config, log *slog.Logger, collector *metrics.Collector) (*monitor.Monitor, time.Duration, error) {
	interval, err := cfg.RefreshInterval()
	if err != nil {
		return nil, 0, err
	}

	store := registry.New(registry.DefaultHosts...)
	prober := healthcheck.New(store, log, healthcheck.WithEvents(collector.EventChannel()))
	mon := monitor.New(store, prober, dashboard.NewTable(), log, monitor.WithEvents(collector.EventChannel()))

	log.Info("Monitoring hosts",
		slog.Any("hosts", store.Hosts()),
		slog.Duration("refresh_interval", interval))

	return mon, interval, nil
}

package handler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/angeloszaimis/host-health/internal/metrics"
	"github.com/angeloszaimis/host-health/internal/monitor"
)

const htmlContentType = "text/html; charset=utf-8"

type DashboardHandler struct {
	logger    *slog.Logger
	monitor   *monitor.Monitor
	collector *metrics.Collector
}

func NewDashboardHandler(logger *slog.Logger, mon *monitor.Monitor, collector *metrics.Collector) *DashboardHandler {
	return &DashboardHandler{
		logger:    logger,
		monitor:   mon,
		collector: collector,
	}
}

// Page serves the full dashboard document.
func (h *DashboardHandler) Page(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.monitor.Table().WritePage(&buf); err != nil {
		h.logger.Error("Failed to render page", slog.Any("err", err))
		c.String(http.StatusInternalServerError, "failed to render page")
		return
	}
	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}

// Trigger starts a probe batch and answers with the table body as rendered
// right after the batch started. With ?wait=true the batch is awaited and the
// table rendered again first.
func (h *DashboardHandler) Trigger(c *gin.Context) {
	wait, err := strconv.ParseBool(c.DefaultQuery("wait", "false"))
	if err != nil {
		c.String(http.StatusBadRequest, "wait must be a boolean")
		return
	}

	// Probes outlive the request; only their own deadline bounds them.
	batch := h.monitor.Trigger(context.WithoutCancel(c.Request.Context()))

	if wait {
		if err := batch.Wait(c.Request.Context()); err != nil {
			h.logger.Warn("Stopped waiting for probe batch", slog.Any("err", err))
		} else {
			h.monitor.Render()
		}
	}

	var buf bytes.Buffer
	if err := h.monitor.Table().WriteBody(&buf); err != nil {
		h.logger.Error("Failed to render table body", slog.Any("err", err))
		c.String(http.StatusInternalServerError, "failed to render table")
		return
	}
	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}

// Hosts serves the registry snapshot.
func (h *DashboardHandler) Hosts(c *gin.Context) {
	c.JSON(http.StatusOK, h.monitor.Store().Snapshot())
}

// Stats serves the probe metrics snapshot.
func (h *DashboardHandler) Stats(c *gin.Context) {
	h.collector.Handler().ServeHTTP(c.Writer, c.Request)
}

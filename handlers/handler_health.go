package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
)

func (h *Handler) Health(c *gin.Context) {
	info, err := h.reader.Collect(c.Request.Context())
	if err != nil {
		slog.Error("health check failed", "error", err)
		writeJSON(c, http.StatusInternalServerError, HealthResponse{
			Status:    StatusUnhealthy,
			Error:     err.Error(),
			Timestamp: h.timestamp(),
		})
		return
	}

	slog.Debug("health check",
		"hostname", info.Hostname,
		"mem_available", humanize.IBytes(info.MemoryAvailableBytes),
		"cpu", info.CPUUsagePercent,
	)
	writeJSON(c, http.StatusOK, HealthResponse{
		Status:     StatusHealthy,
		Timestamp:  h.timestamp(),
		SystemInfo: info,
	})
}

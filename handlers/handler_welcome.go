package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MatBureau/devops-health/internal/version"
)

func (h *Handler) Welcome(c *gin.Context) {
	writeJSON(c, http.StatusOK, WelcomeResponse{
		Message:     WelcomeMessage,
		Timestamp:   h.timestamp(),
		Status:      StatusHealthy,
		Version:     version.APIVersion,
		Environment: h.environment(),
	})
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	slogGin "github.com/samber/slog-gin"
)

func NewRouter(h *Handler, logger *slog.Logger) http.Handler {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	if logger == nil {
		logger = slog.Default()
	}
	r.Use(slogGin.NewWithConfig(logger.WithGroup("http"), slogGin.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
	}))
	r.Use(gin.Recovery())

	r.GET("/", h.Welcome)
	r.HEAD("/", h.Welcome)
	r.GET("/health", h.Health)
	r.HEAD("/health", h.Health)

	r.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "not found")
	})
	r.NoMethod(func(c *gin.Context) {
		writeError(c, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r.Handler()
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}

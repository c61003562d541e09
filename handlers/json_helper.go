package handlers

import (
	"github.com/gin-gonic/gin"
)

// writeJSON skips gin's HTML escaping so messages go out as written.
func writeJSON(c *gin.Context, status int, v any) {
	c.PureJSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, gin.H{"error": msg})
}

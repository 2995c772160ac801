package handlers

import (
	"net/http"
	"time"

	"sage-portal/services"

	"github.com/gin-gonic/gin"
)

type KeepAliveHandler struct {
	keepAlive *services.KeepAlive
}

func NewKeepAliveHandler(k *services.KeepAlive) *KeepAliveHandler {
	return &KeepAliveHandler{keepAlive: k}
}

// Ping handles GET /api/keep-alive. It touches the database so hosted
// instances that idle out stay awake.
func (h *KeepAliveHandler) Ping(c *gin.Context) {
	if c.Request.Method != http.MethodGet {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if err := h.keepAlive.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     err.Error(),
			"timestamp": now,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Database is active",
		"timestamp": now,
	})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health pings the database. It sits outside the auth group.
func (h *Handler) Health(c *gin.Context) {
	sqlDB, err := h.store.DB().DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		h.log.Error("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

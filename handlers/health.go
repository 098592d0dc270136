package handlers

import (
	"net/http"

	"hotelbook/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last background health snapshot; any failed
// dependency answers 503.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	if !status.Healthy() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "down": status.Down(), "checkedAt": status.CheckedAt})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm hotelbook", "checkedAt": status.CheckedAt})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartbooking/services/audit"
)

// AuditService is wired in main before the router starts serving.
var AuditService audit.Service

// ListAuditLogsHandler returns all audit entries, newest first. Admin only.
func ListAuditLogsHandler(c *gin.Context) {
	logs, err := AuditService.ListLogs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}

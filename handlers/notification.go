package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartbooking/middleware"
	"smartbooking/services/notification"
)

// NotificationService is wired in main before the router starts serving.
var NotificationService notification.Service

// ListNotificationsHandler returns the authenticated user's notifications,
// newest first.
func ListNotificationsHandler(c *gin.Context) {
	notifications, err := NotificationService.GetNotifications(middleware.CallerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

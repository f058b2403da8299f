package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"smartbooking/handlers"
	"smartbooking/middleware"
)

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", handlers.RegisterHandler)
		api.POST("/login", handlers.LoginHandler)
	}
}

// RegisterResourceRoutes registers the bookable catalogue endpoints.
func RegisterResourceRoutes(r *gin.Engine) {
	api := r.Group("/api/resources")
	{
		api.Use(middleware.JWTAuth())
		api.GET("", handlers.ListResourcesHandler)
		api.GET("/:id", handlers.GetResourceHandler)
		api.GET("/:id/timetable", handlers.GetTimetableHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuth())
		api.POST("", handlers.CreateBookingHandler)
		api.GET("", handlers.ListMyBookingsHandler)
		api.POST("/:id/pay", handlers.PayBookingHandler)
		api.POST("/:id/cancel", handlers.CancelBookingHandler)
	}
}

// RegisterNotificationRoutes registers the in-app notification feed.
func RegisterNotificationRoutes(r *gin.Engine) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuth())
		api.GET("", handlers.ListNotificationsHandler)
	}
}

// RegisterAdminRoutes registers approval, catalogue management and audit
// endpoints. All of them require the ADMIN role.
func RegisterAdminRoutes(r *gin.Engine) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuth(), middleware.RequireAdmin())
		api.GET("/bookings/pending", handlers.ListPendingBookingsHandler)
		api.POST("/bookings/:id/approve", handlers.ApproveBookingHandler)
		api.POST("/bookings/:id/reject", handlers.RejectBookingHandler)
		api.PUT("/bookings/:id", handlers.AdminUpdateBookingHandler)
		api.DELETE("/bookings/:id", handlers.AdminDeleteBookingHandler)
		api.POST("/resources", handlers.CreateResourceHandler)
		api.PUT("/resources/:id", handlers.UpdateResourceHandler)
		api.GET("/audit", handlers.ListAuditLogsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r)
	RegisterResourceRoutes(r)
	RegisterBookingRoutes(r)
	RegisterNotificationRoutes(r)
	RegisterAdminRoutes(r)
	RegisterHealthRoute(r)
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"

	"smartbooking/config"
	"smartbooking/cron"
	"smartbooking/database"
	auditRepoPkg "smartbooking/database/repository/audit"
	bookingRepoPkg "smartbooking/database/repository/booking"
	notificationRepoPkg "smartbooking/database/repository/notification"
	paymentRepoPkg "smartbooking/database/repository/payment"
	resourceRepoPkg "smartbooking/database/repository/resource"
	userRepoPkg "smartbooking/database/repository/user"
	"smartbooking/handlers"
	"smartbooking/middleware"
	"smartbooking/models"
	"smartbooking/routes"
	"smartbooking/services/audit"
	"smartbooking/services/booking"
	"smartbooking/services/notification"
	"smartbooking/services/payment"
	"smartbooking/services/resource"
	"smartbooking/services/user"
	"smartbooking/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	resourceRepo := resourceRepoPkg.NewMongoResourceRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()
	auditRepo := auditRepoPkg.NewMongoAuditLogRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	userService := &user.DefaultUserService{Repo: userRepo, Logger: logger}
	resourceService := &resource.DefaultResourceService{Repo: resourceRepo, Logger: logger}
	paymentService := &payment.DefaultPaymentService{Repo: paymentRepo, Logger: logger}
	auditService := &audit.DefaultAuditService{Repo: auditRepo, Logger: logger}
	notificationService := &notification.DefaultNotificationService{Repo: notificationRepo, Logger: logger}

	machine := booking.NewStateMachine(
		booking.StatusObserverFunc(notificationService.OnBookingStatusChanged),
		booking.StatusObserverFunc(func(_ context.Context, b *models.Booking, oldStatus, newStatus models.BookingStatus) error {
			logger.Info("booking status changed",
				zap.String("booking_id", b.ID),
				zap.String("old", string(oldStatus)),
				zap.String("new", string(newStatus)),
			)
			return nil
		}),
	)

	scheduler := cron.NewScheduler()
	bookingService := &booking.DefaultBookingService{
		Bookings:  bookingRepo,
		Resources: resourceService,
		Machine:   machine,
		Payments:  paymentService,
		Audit:     auditService,
		Scheduler: scheduler,
		Logger:    logger,
	}

	cron.InitLifecycleWorker(bookingService)

	// handlers.
	handlers.UserService = userService
	handlers.ResourceService = resourceService
	handlers.BookingService = bookingService
	handlers.NotificationService = notificationService
	handlers.AuditService = auditService

	routes.RegisterRoutes(router)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

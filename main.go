// File: streambook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"streambook/config"
	"streambook/cron"
	"streambook/database"
	bookingRepo "streambook/database/repository/booking"
	notificationRepo "streambook/database/repository/notification"
	scheduleRepo "streambook/database/repository/schedule"
	streamerRepo "streambook/database/repository/streamer"
	userRepoPkg "streambook/database/repository/user"
	"streambook/handlers"
	"streambook/routes"
	"streambook/services/booking"
	"streambook/services/notification"
	"streambook/services/payment"
	"streambook/services/tasks"
	"streambook/services/user"
	"streambook/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()
	utils.FirebaseInit()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	schedules := scheduleRepo.NewMongoScheduleRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	streamers := streamerRepo.NewMongoStreamerRepo()
	users := userRepoPkg.NewMongoUserRepo()
	notifications := notificationRepo.NewMongoNotificationRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo:    users,
		Storage: cloudinaryStorageService,
	}

	notificationService := &notification.DefaultNotificationService{
		Repo:  notifications,
		Users: users,
		Push:  utils.FCMClient,
	}

	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	sessionStore := booking.NewSessionStore(utils.GetSessionCacheClient(), sessionTTL)
	gateway := payment.NewStripeGateway(logger)
	reminderScheduler := tasks.NewReminderScheduler()

	bookingService := booking.NewDefaultBookingService(
		schedules,
		bookings,
		streamers,
		sessionStore,
		gateway,
		notificationService,
		reminderScheduler,
		logger,
	)
	defer bookingService.Close()

	// Background worker delivering session reminders.
	cron.InitReminderWorker(notificationService)

	// handlers.
	handlerBundle := &routes.HandlerBundle{
		Auth:         handlers.NewAuthHandler(userService),
		Booking:      handlers.NewBookingHandler(bookingService, logger),
		Payment:      handlers.NewPaymentWebhookHandler(bookingService, config.AppConfig.StripeWebhookSecret, logger),
		Profile:      handlers.NewProfileHandler(userService),
		Notification: handlers.NewNotificationHandler(notificationService),
	}
	routes.RegisterRoutes(router, handlerBundle)

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

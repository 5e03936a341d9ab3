package routes

import (
	"net/http"
	"time"

	"streambook/handlers"
	"streambook/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers so route registration stays in one place.
type HandlerBundle struct {
	Auth         *handlers.AuthHandler
	Booking      *handlers.BookingHandler
	Payment      *handlers.PaymentWebhookHandler
	Profile      *handlers.ProfileHandler
	Notification *handlers.NotificationHandler
}

// RegisterAuthRoutes registers the sign-in endpoint.
func RegisterAuthRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/signin", hb.Auth.SignIn)
	}
}

// RegisterStreamerRoutes registers public streamer availability endpoints.
func RegisterStreamerRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/streamers")
	{
		api.GET("/:id/availability", hb.Booking.GetAvailability)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware())
		bookingGroup.POST("/session", hb.Booking.StartSession)
		bookingGroup.GET("/session/:sessionID", hb.Booking.GetSession)
		bookingGroup.PUT("/session/:sessionID/toggle", hb.Booking.ToggleHour)
		bookingGroup.POST("/session/:sessionID/confirm", hb.Booking.ConfirmBooking)
		bookingGroup.DELETE("/session/:sessionID", hb.Booking.DismissSession)
		bookingGroup.GET("/mine", hb.Booking.ListMyBookings)
		bookingGroup.DELETE("/mine/:bookingID", hb.Booking.CancelBooking)
	}
}

// RegisterPaymentRoutes registers the payment gateway webhook. The gateway
// authenticates with its signature header, not a user token.
func RegisterPaymentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.POST("/webhook", hb.Payment.HandleStripeWebhook)
	}
}

// RegisterProfileRoutes registers profile settings endpoints.
func RegisterProfileRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/profile")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Profile.GetProfile)
		api.PUT("", hb.Profile.UpdateProfile)
		api.PUT("/password", hb.Profile.ChangePassword)
		api.POST("/:kind", hb.Profile.UploadImage)
	}
}

// RegisterNotificationRoutes registers notification endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Notification.List)
		api.PUT("/:id/read", hb.Notification.MarkRead)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterStreamerRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterProfileRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
}

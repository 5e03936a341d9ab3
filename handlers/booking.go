package handlers

import (
	"net/http"

	"streambook/middleware"
	"streambook/models"
	"streambook/services/booking"
	"streambook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the availability engine and the booking session
// flow over HTTP.
type BookingHandler struct {
	Svc    booking.Service
	Logger *zap.Logger
}

func NewBookingHandler(svc booking.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// GetAvailability lists the bookable hours of a requested window.
// GET /api/streamers/:id/availability?date=2025-06-02&from=10:00&to=13:00
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	streamerID := c.Param("id")
	date := c.Query("date")
	from := c.DefaultQuery("from", "00:00")
	to := c.DefaultQuery("to", "23:00")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing date", "")
		return
	}

	options := h.Svc.Options(c.Request.Context(), streamerID, date, from, to)
	c.JSON(http.StatusOK, gin.H{
		"date":    date,
		"options": options,
	})
}

// StartSession opens a booking session from the page-load parameters.
func (h *BookingHandler) StartSession(c *gin.Context) {
	var input struct {
		StreamerID string `json:"streamerId" binding:"required"`
		Date       string `json:"date" binding:"required"`
		Platform   string `json:"platform"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Svc.StartSession(c.Request.Context(), input.StreamerID, input.Date, input.Platform)
	if err != nil {
		h.respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// GetSession returns the session with its price breakdown.
func (h *BookingHandler) GetSession(c *gin.Context) {
	session, price, err := h.Svc.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(session, price))
}

// ToggleHour flips one hour of the session's selection.
func (h *BookingHandler) ToggleHour(c *gin.Context) {
	var input struct {
		Hour string `json:"hour" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, price, err := h.Svc.ToggleHour(c.Request.Context(), c.Param("sessionID"), input.Hour)
	if err != nil {
		h.respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(session, price))
}

// ConfirmBooking begins the payment handshake; requires authentication.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	session, err := h.Svc.Confirm(c.Request.Context(), c.Param("sessionID"), userID)
	if err != nil {
		h.respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sessionId": session.SessionID,
		"state":     session.State,
		"token":     session.Token,
		"orderId":   session.OrderID,
	})
}

// ListMyBookings returns the authenticated client's bookings.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	bookings, err := h.Svc.ListClientBookings(c.Request.Context(), userID)
	if err != nil {
		h.respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CancelBooking cancels one of the client's own active bookings.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if err := h.Svc.CancelBooking(c.Request.Context(), c.Param("bookingID"), userID); err != nil {
		h.respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// DismissSession drops the local flow state.
func (h *BookingHandler) DismissSession(c *gin.Context) {
	if err := h.Svc.Dismiss(c.Request.Context(), c.Param("sessionID")); err != nil {
		h.respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dismissed": true})
}

func sessionResponse(session *models.BookingSession, price models.PriceBreakdown) gin.H {
	return gin.H{
		"session": session,
		"price":   price,
		"display": booking.FormatPrice(price),
	}
}

// respondFlowError maps flow error codes to HTTP statuses and user notices.
func (h *BookingHandler) respondFlowError(c *gin.Context, err error) {
	switch {
	case booking.IsCode(err, booking.CodeNotAuthenticated):
		utils.JSONError(c, http.StatusUnauthorized, "sign in to continue", "")
	case booking.IsCode(err, booking.CodeSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "booking session not found or expired", "")
	case booking.IsCode(err, booking.CodeEmptySelection):
		utils.JSONError(c, http.StatusBadRequest, "select at least one hour", "")
	case booking.IsCode(err, booking.CodeInvalidFlowTransition):
		utils.JSONError(c, http.StatusConflict, "the booking flow is not in a state that allows this", "")
	case booking.IsCode(err, booking.CodePaymentInit):
		utils.JSONError(c, http.StatusBadGateway, "could not start payment, please try again", "")
	case booking.IsCode(err, booking.CodeDataUnavailable):
		utils.JSONError(c, http.StatusNotFound, "requested data unavailable", "")
	default:
		h.Logger.Error("booking handler error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "something went wrong", "")
	}
}

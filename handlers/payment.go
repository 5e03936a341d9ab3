// File: streambook/handlers/payment.go
package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"streambook/models"
	"streambook/services/booking"
	"streambook/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// PaymentWebhookHandler receives the gateway's asynchronous charge results.
type PaymentWebhookHandler struct {
	Svc           booking.Service
	WebhookSecret string
	Logger        *zap.Logger
}

func NewPaymentWebhookHandler(svc booking.Service, webhookSecret string, logger *zap.Logger) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{Svc: svc, WebhookSecret: webhookSecret, Logger: logger}
}

// HandleStripeWebhook verifies and translates a Stripe event into the
// gateway result the booking flow consumes. Exactly one of
// succeeded/processing/failed arrives per payment intent.
func (h *PaymentWebhookHandler) HandleStripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "unreadable payload", "")
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.WebhookSecret)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid webhook signature", "")
		return
	}

	var status string
	switch event.Type {
	case "payment_intent.succeeded":
		status = models.GatewayStatusSuccess
	case "payment_intent.processing":
		status = models.GatewayStatusPending
	case "payment_intent.payment_failed":
		status = models.GatewayStatusError
	default:
		c.JSON(http.StatusOK, gin.H{"ignored": true})
		return
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "malformed event payload", "")
		return
	}

	result := models.GatewayResult{
		OrderID: intent.Metadata["orderId"],
		Status:  status,
	}
	if intent.LastPaymentError != nil {
		result.Message = intent.LastPaymentError.Msg
	}

	if err := h.Svc.HandleGatewayResult(c.Request.Context(), result); err != nil {
		if booking.IsCode(err, booking.CodeInvalidOrderID) {
			// Money has moved but the reference is unusable; acknowledge the
			// event so the gateway stops retrying and surface support contact.
			h.Logger.Error("gateway success with malformed order id",
				zap.String("paymentIntentId", intent.ID), zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"error": "order reference malformed, contact support"})
			return
		}
		h.Logger.Error("failed to process gateway result",
			zap.String("orderId", result.OrderID),
			zap.String("status", status),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process result"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

package models

import "time"

// Booking flow states. A session starts idle, moves through the payment
// handshake, and ends succeeded, failed, or pending (gateway still open).
const (
	FlowIdle           = "idle"
	FlowAwaitingToken  = "awaiting_payment_token"
	FlowAwaitingResult = "awaiting_payment_result"
	FlowSucceeded      = "succeeded"
	FlowFailed         = "failed"
	FlowPending        = "pending"
)

// BookingSession holds a booking-in-progress between page load and payment.
type BookingSession struct {
	SessionID string         `json:"sessionId"`
	Request   BookingRequest `json:"request"`
	State     string         `json:"state"`
	OrderID   string         `json:"orderId,omitempty"`
	Token     string         `json:"token,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

package models

import "time"

// Booking status values. Only pending and accepted bookings occupy their
// hours; cancelled, rejected and completed bookings do not block new ones.
const (
	BookingStatusPending   = "pending"
	BookingStatusAccepted  = "accepted"
	BookingStatusCancelled = "cancelled"
	BookingStatusRejected  = "rejected"
	BookingStatusCompleted = "completed"
)

// Booking represents a persisted booking record.
type Booking struct {
	ID         string    `bson:"id" json:"id"`
	StreamerID string    `bson:"streamerId" json:"streamerId"`
	ClientID   string    `bson:"clientId" json:"clientId"`
	Date       string    `bson:"date" json:"date"`           // "2006-01-02"
	StartTime  string    `bson:"startTime" json:"startTime"` // "HH:00"
	EndTime    string    `bson:"endTime" json:"endTime"`     // "HH:00", exclusive
	Status     string    `bson:"status" json:"status"`
	Platform   string    `bson:"platform" json:"platform"`
	TotalPrice float64   `bson:"totalPrice" json:"totalPrice"`
	OrderID    string    `bson:"orderId,omitempty" json:"orderId,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// IsActive reports whether the booking still occupies its hours.
func (b Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusAccepted
}

// BookingRequest is the session-scoped state of a booking in progress. It is
// created when the booking page loads, mutated by hour toggles, and consumed
// on confirmation; it is never persisted as-is.
type BookingRequest struct {
	StreamerID    string   `json:"streamerId"`
	ClientID      string   `json:"clientId,omitempty"`
	Date          string   `json:"date"`
	Platform      string   `json:"platform"`
	BasePrice     float64  `json:"basePrice"`
	SelectedHours []string `json:"selectedHours"`
}

package models

import "time"

// NotificationTypeConfirmation marks the two records written after a
// successful payment, one per party.
const NotificationTypeConfirmation = "confirmation"

// Notification is a stored in-app notification record.
type Notification struct {
	ID         string    `bson:"id" json:"id"`
	UserID     string    `bson:"userId" json:"userId"`
	StreamerID string    `bson:"streamerId,omitempty" json:"streamerId,omitempty"`
	BookingID  string    `bson:"bookingId" json:"bookingId"`
	Type       string    `bson:"type" json:"type"`
	Message    string    `bson:"message" json:"message"`
	Read       bool      `bson:"read" json:"read"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

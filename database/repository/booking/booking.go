package bookingRepo

import (
	"context"

	"streambook/models"
)

// BookingRepository defines access to persisted bookings. WatchChanges
// delivers at-least-once, unordered invalidation signals whenever any
// booking row for the streamer changes; the payload carries no delta, it
// only tells the caller to refetch.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	ListActiveBookings(ctx context.Context, streamerID string) ([]models.Booking, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID, status string) error
	WatchChanges(ctx context.Context, streamerID string) (<-chan struct{}, error)
}

package notificationRepo

import (
	"context"

	"streambook/models"
)

// NotificationRepository defines access to stored notification records.
type NotificationRepository interface {
	Insert(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
}

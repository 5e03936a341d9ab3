package notification

import (
	"context"
	"fmt"
	"time"

	notificationRepo "streambook/database/repository/notification"
	userRepo "streambook/database/repository/user"
	"streambook/models"
	"streambook/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService records in-app notifications and pushes them
// best-effort over FCM.
type NotificationService interface {
	RecordBookingConfirmation(ctx context.Context, booking models.Booking, streamerOwnerID string) error
	SendSessionReminder(ctx context.Context, userID, title, body string, data map[string]string) error
	ListForUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo  notificationRepo.NotificationRepository
	Users userRepo.UserRepository
	Push  *messaging.Client // nil disables push delivery
}

// RecordBookingConfirmation inserts one confirmation record for the
// streamer's owning user and one for the client. Both inserts are attempted
// even if the first fails; an error is returned when any write failed, but
// the booking itself is already committed and must not be rolled back.
func (s *DefaultNotificationService) RecordBookingConfirmation(ctx context.Context, booking models.Booking, streamerOwnerID string) error {
	logger := utils.GetLogger()
	now := time.Now()

	records := []models.Notification{}
	if streamerOwnerID != "" {
		records = append(records, models.Notification{
			ID:         uuid.New().String(),
			UserID:     streamerOwnerID,
			StreamerID: booking.StreamerID,
			BookingID:  booking.ID,
			Type:       models.NotificationTypeConfirmation,
			Message: fmt.Sprintf("New booking on %s from %s to %s.",
				booking.Date, booking.StartTime, booking.EndTime),
			CreatedAt: now,
		})
	}
	records = append(records, models.Notification{
		ID:        uuid.New().String(),
		UserID:    booking.ClientID,
		BookingID: booking.ID,
		Type:      models.NotificationTypeConfirmation,
		Message: fmt.Sprintf("Your booking on %s from %s to %s is awaiting the streamer's confirmation.",
			booking.Date, booking.StartTime, booking.EndTime),
		CreatedAt: now,
	})

	var firstErr error
	for i := range records {
		if err := s.Repo.Insert(ctx, &records[i]); err != nil {
			logger.Error("notification write failed",
				zap.String("userId", records[i].UserID),
				zap.String("bookingId", booking.ID),
				zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		s.pushBestEffort(ctx, records[i])
	}
	if firstErr != nil {
		return fmt.Errorf("notification write failed: %w", firstErr)
	}
	return nil
}

// SendSessionReminder pushes a reminder; nothing is stored.
func (s *DefaultNotificationService) SendSessionReminder(ctx context.Context, userID, title, body string, data map[string]string) error {
	if s.Push == nil {
		return nil
	}
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("reminder: could not find user %s: %w", userID, err)
	}
	if user.FCMToken == "" {
		return nil
	}
	msg := &messaging.Message{
		Token: user.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := s.Push.Send(ctx, msg); err != nil {
		return fmt.Errorf("reminder: failed to send push to user %s: %w", userID, err)
	}
	return nil
}

func (s *DefaultNotificationService) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, notificationID string) error {
	return s.Repo.MarkRead(ctx, notificationID)
}

// pushBestEffort mirrors a stored record over FCM; failures are logged only.
func (s *DefaultNotificationService) pushBestEffort(ctx context.Context, n models.Notification) {
	if s.Push == nil {
		return
	}
	logger := utils.GetLogger()
	user, err := s.Users.GetByID(ctx, n.UserID)
	if err != nil || user.FCMToken == "" {
		return
	}
	msg := &messaging.Message{
		Token: user.FCMToken,
		Notification: &messaging.Notification{
			Title: "Booking confirmed",
			Body:  n.Message,
		},
		Data: map[string]string{
			"type":      n.Type,
			"bookingId": n.BookingID,
		},
	}
	if _, err := s.Push.Send(ctx, msg); err != nil {
		logger.Warn("push delivery failed",
			zap.String("userId", n.UserID), zap.Error(err))
	}
}

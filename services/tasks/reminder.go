package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"streambook/config"
	"streambook/models"

	"github.com/hibiken/asynq"
)

const TypeSessionReminder = "reminder:session"

// Reminders fire this long before the booked session starts.
const reminderLead = time.Hour

// ReminderPayload is the task body for a pre-session reminder.
type ReminderPayload struct {
	BookingID  string `json:"bookingId"`
	ClientID   string `json:"clientId"`
	StreamerID string `json:"streamerId"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
}

// NewSessionReminderTask builds the asynq task for a reminder payload.
func NewSessionReminderTask(payload ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSessionReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}
	return task, opts, nil
}

// ReminderScheduler enqueues session reminders on the shared Redis queue.
type ReminderScheduler struct {
	client *asynq.Client
}

// NewReminderScheduler creates a scheduler backed by the reminder queue.
func NewReminderScheduler() *ReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &ReminderScheduler{client: client}
}

// ScheduleSessionReminder enqueues a reminder an hour before the session.
// Sessions starting too soon get no reminder.
func (s *ReminderScheduler) ScheduleSessionReminder(booking models.Booking) error {
	startAt, err := time.ParseInLocation("2006-01-02 15:04", booking.Date+" "+booking.StartTime, time.Local)
	if err != nil {
		return fmt.Errorf("reminder: unparsable session start %q %q: %w", booking.Date, booking.StartTime, err)
	}
	fireAt := startAt.Add(-reminderLead)
	if fireAt.Before(time.Now()) {
		return nil
	}

	task, opts, err := NewSessionReminderTask(ReminderPayload{
		BookingID:  booking.ID,
		ClientID:   booking.ClientID,
		StreamerID: booking.StreamerID,
		Date:       booking.Date,
		StartTime:  booking.StartTime,
	}, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("reminder: failed to enqueue task for booking %s: %w", booking.ID, err)
	}
	return nil
}

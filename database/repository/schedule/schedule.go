package scheduleRepo

import (
	"context"
	"errors"

	"streambook/models"
)

// ErrNotFound is returned when a streamer has no published schedule.
var ErrNotFound = errors.New("schedule not found")

// ScheduleRepository defines access to streamers' weekly availability
// templates.
type ScheduleRepository interface {
	GetWeeklySchedule(ctx context.Context, streamerID string) (*models.WeeklySchedule, error)
	SetWeeklySchedule(ctx context.Context, schedule *models.WeeklySchedule) error
}

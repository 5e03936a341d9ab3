package booking

import (
	"context"
	"sync"

	"streambook/models"

	"go.uber.org/zap"
)

// ScheduleSource supplies the weekly availability template.
type ScheduleSource interface {
	GetWeeklySchedule(ctx context.Context, streamerID string) (*models.WeeklySchedule, error)
}

// BookingSource supplies active bookings and their change notifications.
type BookingSource interface {
	ListActiveBookings(ctx context.Context, streamerID string) ([]models.Booking, error)
	WatchChanges(ctx context.Context, streamerID string) (<-chan struct{}, error)
}

// AvailabilityWatcher owns the availability snapshot for one streamer. The
// schedule and booking list are read-only snapshots replaced wholesale on
// every fetch; there are no partial merges. Each change-stream signal
// triggers a full refetch. A snapshot with an incomplete fetch resolves to
// Unknown, which fails closed.
type AvailabilityWatcher struct {
	streamerID string
	schedules  ScheduleSource
	bookings   BookingSource
	logger     *zap.Logger

	mu   sync.RWMutex
	snap Snapshot
}

// NewAvailabilityWatcher creates a watcher for one streamer.
func NewAvailabilityWatcher(streamerID string, schedules ScheduleSource, bookings BookingSource, logger *zap.Logger) *AvailabilityWatcher {
	return &AvailabilityWatcher{
		streamerID: streamerID,
		schedules:  schedules,
		bookings:   bookings,
		logger:     logger,
	}
}

// Refresh refetches schedule and bookings and replaces the snapshot. The two
// fetches are independent: one failing leaves the other's fresh data in
// place, and the failed side stays unloaded so resolution degrades to
// unavailable rather than serving stale certainty.
func (w *AvailabilityWatcher) Refresh(ctx context.Context) {
	schedule, schedErr := w.schedules.GetWeeklySchedule(ctx, w.streamerID)
	if schedErr != nil {
		w.logger.Warn("availability: schedule fetch failed",
			zap.String("streamerId", w.streamerID), zap.Error(schedErr))
	}
	bookings, bookErr := w.bookings.ListActiveBookings(ctx, w.streamerID)
	if bookErr != nil {
		w.logger.Warn("availability: booking fetch failed",
			zap.String("streamerId", w.streamerID), zap.Error(bookErr))
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if schedErr == nil {
		w.snap.Schedule = schedule
		w.snap.ScheduleLoaded = true
	}
	if bookErr == nil {
		w.snap.Bookings = bookings
		w.snap.BookingsLoaded = true
	}
}

// Resolver returns a resolver over the current snapshot.
func (w *AvailabilityWatcher) Resolver() *Resolver {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return NewResolver(w.snap)
}

// Run subscribes to booking changes and refetches on every signal until the
// context ends. Change notifications are advisory and at-least-once; a lost
// subscription degrades to the snapshot loaded so far.
func (w *AvailabilityWatcher) Run(ctx context.Context) {
	w.Refresh(ctx)

	changes, err := w.bookings.WatchChanges(ctx, w.streamerID)
	if err != nil {
		w.logger.Warn("availability: change subscription failed",
			zap.String("streamerId", w.streamerID), zap.Error(err))
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			w.Refresh(ctx)
		}
	}
}

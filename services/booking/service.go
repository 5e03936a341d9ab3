package booking

import (
	"context"
	"sync"

	"streambook/models"
	"streambook/services/payment"

	"go.uber.org/zap"
)

// BookingStore is the booking repository surface the engine needs.
type BookingStore interface {
	BookingSource
	Create(ctx context.Context, booking *models.Booking) error
	ListByClient(ctx context.Context, clientID string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID, status string) error
}

// StreamerSource supplies streamer profiles for pricing and notification
// routing.
type StreamerSource interface {
	GetByID(ctx context.Context, id string) (*models.Streamer, error)
}

// NotificationRecorder writes the post-payment confirmation records. Write
// failures are the caller's to log; they never roll back a booking.
type NotificationRecorder interface {
	RecordBookingConfirmation(ctx context.Context, booking models.Booking, streamerOwnerID string) error
}

// ReminderScheduler enqueues a pre-session reminder for a booked session.
type ReminderScheduler interface {
	ScheduleSessionReminder(booking models.Booking) error
}

// Service is the booking engine's public surface.
type Service interface {
	Options(ctx context.Context, streamerID, date, from, to string) []string
	StartSession(ctx context.Context, streamerID, date, platform string) (*models.BookingSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.BookingSession, models.PriceBreakdown, error)
	ToggleHour(ctx context.Context, sessionID, hour string) (*models.BookingSession, models.PriceBreakdown, error)
	Confirm(ctx context.Context, sessionID, userID string) (*models.BookingSession, error)
	Dismiss(ctx context.Context, sessionID string) error
	ListClientBookings(ctx context.Context, clientID string) ([]models.Booking, error)
	CancelBooking(ctx context.Context, bookingID, clientID string) error
	HandleGatewayResult(ctx context.Context, res models.GatewayResult) error
	Close()
}

// DefaultBookingService wires the availability engine, session store,
// payment gateway and notification recorder together.
type DefaultBookingService struct {
	Schedules ScheduleSource
	Bookings  BookingStore
	Streamers StreamerSource
	Sessions  SessionRepository
	Gateway   payment.Gateway
	Notifier  NotificationRecorder
	Reminders ReminderScheduler
	Logger    *zap.Logger

	mu        sync.Mutex
	watchers  map[string]*AvailabilityWatcher
	watchCtx  context.Context
	stopWatch context.CancelFunc
}

// NewDefaultBookingService creates the engine. Reminders may be nil.
func NewDefaultBookingService(
	schedules ScheduleSource,
	bookings BookingStore,
	streamers StreamerSource,
	sessions SessionRepository,
	gateway payment.Gateway,
	notifier NotificationRecorder,
	reminders ReminderScheduler,
	logger *zap.Logger,
) *DefaultBookingService {
	ctx, cancel := context.WithCancel(context.Background())
	return &DefaultBookingService{
		Schedules: schedules,
		Bookings:  bookings,
		Streamers: streamers,
		Sessions:  sessions,
		Gateway:   gateway,
		Notifier:  notifier,
		Reminders: reminders,
		Logger:    logger,
		watchers:  make(map[string]*AvailabilityWatcher),
		watchCtx:  ctx,
		stopWatch: cancel,
	}
}

// Close stops all availability watchers.
func (s *DefaultBookingService) Close() {
	s.stopWatch()
}

// watcherFor lazily creates one long-lived watcher per streamer; each keeps
// a live snapshot refreshed by the booking change stream.
func (s *DefaultBookingService) watcherFor(streamerID string) *AvailabilityWatcher {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.watchers[streamerID]; ok {
		return w
	}
	w := NewAvailabilityWatcher(streamerID, s.Schedules, s.Bookings, s.Logger)
	s.watchers[streamerID] = w
	go w.Run(s.watchCtx)
	return w
}

// resolver returns a resolver over the freshest snapshot, forcing a
// synchronous fetch when the background watcher has not loaded yet.
func (s *DefaultBookingService) resolver(ctx context.Context, streamerID string) *Resolver {
	w := s.watcherFor(streamerID)
	r := w.Resolver()
	if r.snap.ScheduleLoaded && r.snap.BookingsLoaded {
		return r
	}
	w.Refresh(ctx)
	return w.Resolver()
}

// Options lists the bookable hours in [from, to) on the date. Missing data
// fails closed to an empty list.
func (s *DefaultBookingService) Options(ctx context.Context, streamerID, date, from, to string) []string {
	return s.resolver(ctx, streamerID).OptionsFor(date, from, to)
}

// StartSession opens an idle booking session priced from the streamer's
// hourly rate.
func (s *DefaultBookingService) StartSession(ctx context.Context, streamerID, date, platform string) (*models.BookingSession, error) {
	streamer, err := s.Streamers.GetByID(ctx, streamerID)
	if err != nil {
		return nil, NewFlowError(CodeDataUnavailable, "streamer not found", err)
	}
	if platform == "" && len(streamer.Platforms) > 0 {
		platform = streamer.Platforms[0]
	}
	req := models.BookingRequest{
		StreamerID: streamerID,
		Date:       date,
		Platform:   platform,
		BasePrice:  streamer.HourlyRate,
	}
	return s.Sessions.Create(ctx, req)
}

// GetSession returns the session and the price breakdown of its selection.
func (s *DefaultBookingService) GetSession(ctx context.Context, sessionID string) (*models.BookingSession, models.PriceBreakdown, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, models.PriceBreakdown{}, err
	}
	price := CalculatePrice(session.Request.BasePrice, len(session.Request.SelectedHours))
	return session, price, nil
}

// ToggleHour flips one hour of the session's selection through the
// contiguous-selection rules and reprices the result.
func (s *DefaultBookingService) ToggleHour(ctx context.Context, sessionID, hour string) (*models.BookingSession, models.PriceBreakdown, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, models.PriceBreakdown{}, err
	}
	if session.State != models.FlowIdle {
		return nil, models.PriceBreakdown{}, NewFlowError(CodeInvalidFlowTransition,
			"selection is locked while payment is in progress", nil)
	}

	r := s.resolver(ctx, session.Request.StreamerID)
	session.Request.SelectedHours = r.Toggle(session.Request.Date, hour, session.Request.SelectedHours)
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, models.PriceBreakdown{}, err
	}
	price := CalculatePrice(session.Request.BasePrice, len(session.Request.SelectedHours))
	return session, price, nil
}

// ListClientBookings returns the client's bookings, newest first.
func (s *DefaultBookingService) ListClientBookings(ctx context.Context, clientID string) ([]models.Booking, error) {
	return s.Bookings.ListByClient(ctx, clientID)
}

// CancelBooking cancels a booking the client owns, freeing its hours. Only
// active bookings can be cancelled.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID, clientID string) error {
	bookings, err := s.Bookings.ListByClient(ctx, clientID)
	if err != nil {
		return err
	}
	for _, b := range bookings {
		if b.ID != bookingID {
			continue
		}
		if !b.IsActive() {
			return NewFlowError(CodeInvalidFlowTransition, "booking can no longer be cancelled", nil)
		}
		return s.Bookings.UpdateStatus(ctx, bookingID, models.BookingStatusCancelled)
	}
	return NewFlowError(CodeDataUnavailable, "booking not found", nil)
}

// Dismiss drops the local flow state. An in-flight gateway request, if any,
// is not cancelled; its late result will simply find no session.
func (s *DefaultBookingService) Dismiss(ctx context.Context, sessionID string) error {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.Sessions.Delete(ctx, session)
}

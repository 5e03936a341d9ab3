package booking

import (
	"context"
	"testing"
	"time"

	"streambook/models"
	"streambook/services/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memSessions is an in-memory stand-in for the Redis session store.
type memSessions struct {
	sessions map[string]models.BookingSession
	orders   map[string]string
}

func newMemSessions() *memSessions {
	return &memSessions{
		sessions: make(map[string]models.BookingSession),
		orders:   make(map[string]string),
	}
}

func (m *memSessions) Create(_ context.Context, req models.BookingRequest) (*models.BookingSession, error) {
	session := &models.BookingSession{
		SessionID: uuid.New().String(),
		Request:   req,
		State:     models.FlowIdle,
		CreatedAt: time.Now(),
	}
	m.sessions[session.SessionID] = *session
	return session, nil
}

func (m *memSessions) Get(_ context.Context, sessionID string) (*models.BookingSession, error) {
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, NewFlowError(CodeSessionNotFound, "booking session not found or expired", nil)
	}
	out := s
	return &out, nil
}

func (m *memSessions) Save(_ context.Context, session *models.BookingSession) error {
	m.sessions[session.SessionID] = *session
	return nil
}

func (m *memSessions) Delete(_ context.Context, session *models.BookingSession) error {
	delete(m.sessions, session.SessionID)
	if session.OrderID != "" {
		delete(m.orders, session.OrderID)
	}
	return nil
}

func (m *memSessions) IndexOrder(_ context.Context, orderID, sessionID string) error {
	m.orders[orderID] = sessionID
	return nil
}

func (m *memSessions) SessionIDForOrder(_ context.Context, orderID string) (string, error) {
	id, ok := m.orders[orderID]
	if !ok {
		return "", NewFlowError(CodeSessionNotFound, "no session for order "+orderID, nil)
	}
	return id, nil
}

type MockGateway struct{ mock.Mock }

func (m *MockGateway) CreateCharge(ctx context.Context, req models.ChargeRequest) (*models.ChargeToken, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChargeToken), args.Error(1)
}

type MockBookingStore struct{ mock.Mock }

func (m *MockBookingStore) Create(ctx context.Context, booking *models.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockBookingStore) ListActiveBookings(ctx context.Context, streamerID string) ([]models.Booking, error) {
	args := m.Called(ctx, streamerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingStore) WatchChanges(ctx context.Context, streamerID string) (<-chan struct{}, error) {
	args := m.Called(ctx, streamerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(chan struct{}), args.Error(1)
}

func (m *MockBookingStore) ListByClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingStore) UpdateStatus(ctx context.Context, bookingID, status string) error {
	return m.Called(ctx, bookingID, status).Error(0)
}

type MockStreamerSource struct{ mock.Mock }

func (m *MockStreamerSource) GetByID(ctx context.Context, id string) (*models.Streamer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Streamer), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) RecordBookingConfirmation(ctx context.Context, booking models.Booking, streamerOwnerID string) error {
	return m.Called(ctx, booking, streamerOwnerID).Error(0)
}

type MockReminders struct{ mock.Mock }

func (m *MockReminders) ScheduleSessionReminder(booking models.Booking) error {
	return m.Called(booking).Error(0)
}

var _ payment.Gateway = (*MockGateway)(nil)

type flowFixture struct {
	svc       *DefaultBookingService
	sessions  *memSessions
	gateway   *MockGateway
	bookings  *MockBookingStore
	streamers *MockStreamerSource
	notifier  *MockNotifier
	reminders *MockReminders
}

func newFlowFixture(t *testing.T) *flowFixture {
	t.Helper()
	f := &flowFixture{
		sessions:  newMemSessions(),
		gateway:   &MockGateway{},
		bookings:  &MockBookingStore{},
		streamers: &MockStreamerSource{},
		notifier:  &MockNotifier{},
		reminders: &MockReminders{},
	}
	f.svc = NewDefaultBookingService(
		nil, f.bookings, f.streamers, f.sessions,
		f.gateway, f.notifier, f.reminders, zap.NewNop(),
	)
	t.Cleanup(f.svc.Close)
	return f
}

// seedSession plants a session directly in the store.
func (f *flowFixture) seedSession(state string, hours []string, orderID string) *models.BookingSession {
	session := &models.BookingSession{
		SessionID: uuid.New().String(),
		Request: models.BookingRequest{
			StreamerID:    "streamer-1",
			ClientID:      "client-1",
			Date:          monday,
			Platform:      "twitch",
			BasePrice:     100000,
			SelectedHours: hours,
		},
		State:     state,
		OrderID:   orderID,
		CreatedAt: time.Now(),
	}
	f.sessions.sessions[session.SessionID] = *session
	if orderID != "" {
		f.sessions.orders[orderID] = session.SessionID
	}
	return session
}

func TestConfirm_RequiresAuthentication(t *testing.T) {
	f := newFlowFixture(t)
	session := f.seedSession(models.FlowIdle, []string{"10:00"}, "")

	_, err := f.svc.Confirm(context.Background(), session.SessionID, "")

	assert.True(t, IsCode(err, CodeNotAuthenticated))
}

func TestConfirm_RequiresSelection(t *testing.T) {
	f := newFlowFixture(t)
	session := f.seedSession(models.FlowIdle, nil, "")

	_, err := f.svc.Confirm(context.Background(), session.SessionID, "client-1")

	assert.True(t, IsCode(err, CodeEmptySelection))
	stored, _ := f.sessions.Get(context.Background(), session.SessionID)
	assert.Equal(t, models.FlowIdle, stored.State)
}

func TestConfirm_UnknownSession(t *testing.T) {
	f := newFlowFixture(t)

	_, err := f.svc.Confirm(context.Background(), "no-such-session", "client-1")

	assert.True(t, IsCode(err, CodeSessionNotFound))
}

func TestConfirm_OpensChargeAndAwaitsResult(t *testing.T) {
	f := newFlowFixture(t)
	session := f.seedSession(models.FlowIdle, []string{"10:00", "11:00"}, "")

	f.gateway.On("CreateCharge", mock.Anything, mock.MatchedBy(func(req models.ChargeRequest) bool {
		return req.Amount == 288600 && req.Currency == "idr" && req.PayerID == "client-1"
	})).Return(&models.ChargeToken{OrderID: "order-abc", Token: "tok_secret"}, nil)

	got, err := f.svc.Confirm(context.Background(), session.SessionID, "client-1")

	require.NoError(t, err)
	assert.Equal(t, models.FlowAwaitingResult, got.State)
	assert.Equal(t, "order-abc", got.OrderID)
	assert.Equal(t, "tok_secret", got.Token)
	assert.Equal(t, session.SessionID, f.sessions.orders["order-abc"])
	f.gateway.AssertExpectations(t)
}

func TestConfirm_GatewayFailureResetsToIdle(t *testing.T) {
	f := newFlowFixture(t)
	session := f.seedSession(models.FlowIdle, []string{"10:00"}, "")

	f.gateway.On("CreateCharge", mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	_, err := f.svc.Confirm(context.Background(), session.SessionID, "client-1")

	assert.True(t, IsCode(err, CodePaymentInit))
	stored, _ := f.sessions.Get(context.Background(), session.SessionID)
	assert.Equal(t, models.FlowIdle, stored.State)
	assert.Empty(t, stored.Token)
}

func TestConfirm_RejectsWhilePaymentInProgress(t *testing.T) {
	f := newFlowFixture(t)
	session := f.seedSession(models.FlowAwaitingResult, []string{"10:00"}, "order-1")

	_, err := f.svc.Confirm(context.Background(), session.SessionID, "client-1")

	assert.True(t, IsCode(err, CodeInvalidFlowTransition))
	f.gateway.AssertNotCalled(t, "CreateCharge", mock.Anything, mock.Anything)
}

func TestToggleHour_LockedWhilePaymentInProgress(t *testing.T) {
	f := newFlowFixture(t)
	session := f.seedSession(models.FlowAwaitingResult, []string{"10:00"}, "order-1")

	_, _, err := f.svc.ToggleHour(context.Background(), session.SessionID, "11:00")

	assert.True(t, IsCode(err, CodeInvalidFlowTransition))
}

func TestGatewayResult_SuccessCreatesBooking(t *testing.T) {
	f := newFlowFixture(t)
	orderID := uuid.New().String()
	session := f.seedSession(models.FlowAwaitingResult, []string{"10:00", "11:00"}, orderID)

	var created models.Booking
	f.bookings.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { created = *args.Get(1).(*models.Booking) }).
		Return(nil)
	f.streamers.On("GetByID", mock.Anything, "streamer-1").
		Return(&models.Streamer{ID: "streamer-1", OwnerUserID: "owner-1"}, nil)
	f.notifier.On("RecordBookingConfirmation", mock.Anything, mock.Anything, "owner-1").Return(nil)
	f.reminders.On("ScheduleSessionReminder", mock.Anything).Return(nil)

	err := f.svc.HandleGatewayResult(context.Background(), models.GatewayResult{
		OrderID: orderID,
		Status:  models.GatewayStatusSuccess,
	})

	require.NoError(t, err)
	assert.Equal(t, "10:00", created.StartTime)
	assert.Equal(t, "12:00", created.EndTime)
	assert.Equal(t, models.BookingStatusPending, created.Status)
	assert.Equal(t, 288600.0, created.TotalPrice)
	assert.Equal(t, orderID, created.OrderID)

	// The session is consumed.
	_, err = f.sessions.Get(context.Background(), session.SessionID)
	assert.True(t, IsCode(err, CodeSessionNotFound))
	f.notifier.AssertExpectations(t)
	f.reminders.AssertExpectations(t)
}

func TestGatewayResult_MalformedOrderIDWritesNothing(t *testing.T) {
	f := newFlowFixture(t)
	f.seedSession(models.FlowAwaitingResult, []string{"10:00"}, "not-a-uuid")

	err := f.svc.HandleGatewayResult(context.Background(), models.GatewayResult{
		OrderID: "not-a-uuid",
		Status:  models.GatewayStatusSuccess,
	})

	assert.True(t, IsCode(err, CodeInvalidOrderID))
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "RecordBookingConfirmation", mock.Anything, mock.Anything, mock.Anything)
}

func TestGatewayResult_PendingKeepsTokenOpen(t *testing.T) {
	f := newFlowFixture(t)
	orderID := uuid.New().String()
	session := f.seedSession(models.FlowAwaitingResult, []string{"10:00"}, orderID)
	stored := f.sessions.sessions[session.SessionID]
	stored.Token = "tok_secret"
	f.sessions.sessions[session.SessionID] = stored

	err := f.svc.HandleGatewayResult(context.Background(), models.GatewayResult{
		OrderID: orderID,
		Status:  models.GatewayStatusPending,
	})

	require.NoError(t, err)
	after, _ := f.sessions.Get(context.Background(), session.SessionID)
	assert.Equal(t, models.FlowPending, after.State)
	assert.Equal(t, "tok_secret", after.Token)
}

func TestGatewayResult_ErrorReturnsSessionToIdle(t *testing.T) {
	f := newFlowFixture(t)
	orderID := uuid.New().String()
	session := f.seedSession(models.FlowAwaitingResult, []string{"10:00"}, orderID)

	err := f.svc.HandleGatewayResult(context.Background(), models.GatewayResult{
		OrderID: orderID,
		Status:  models.GatewayStatusError,
		Message: "card declined",
	})

	assert.True(t, IsCode(err, CodePaymentResult))
	after, _ := f.sessions.Get(context.Background(), session.SessionID)
	assert.Equal(t, models.FlowIdle, after.State)
	assert.Empty(t, after.Token)
	assert.Empty(t, after.OrderID)
}

func TestGatewayResult_IgnoresIdleSession(t *testing.T) {
	f := newFlowFixture(t)
	orderID := uuid.New().String()
	f.seedSession(models.FlowIdle, []string{"10:00"}, orderID)

	err := f.svc.HandleGatewayResult(context.Background(), models.GatewayResult{
		OrderID: orderID,
		Status:  models.GatewayStatusError,
	})

	assert.True(t, IsCode(err, CodeInvalidFlowTransition))
}

func TestGatewayResult_NotificationFailureKeepsBooking(t *testing.T) {
	f := newFlowFixture(t)
	orderID := uuid.New().String()
	f.seedSession(models.FlowAwaitingResult, []string{"10:00"}, orderID)

	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.streamers.On("GetByID", mock.Anything, "streamer-1").
		Return(&models.Streamer{ID: "streamer-1", OwnerUserID: "owner-1"}, nil)
	f.notifier.On("RecordBookingConfirmation", mock.Anything, mock.Anything, "owner-1").
		Return(assert.AnError)
	f.reminders.On("ScheduleSessionReminder", mock.Anything).Return(nil)

	err := f.svc.HandleGatewayResult(context.Background(), models.GatewayResult{
		OrderID: orderID,
		Status:  models.GatewayStatusSuccess,
	})

	assert.NoError(t, err)
	f.bookings.AssertExpectations(t)
}

func TestCancelBooking(t *testing.T) {
	f := newFlowFixture(t)
	f.bookings.On("ListByClient", mock.Anything, "client-1").Return([]models.Booking{
		{ID: "booking-1", ClientID: "client-1", Status: models.BookingStatusAccepted},
	}, nil)
	f.bookings.On("UpdateStatus", mock.Anything, "booking-1", models.BookingStatusCancelled).Return(nil)

	err := f.svc.CancelBooking(context.Background(), "booking-1", "client-1")

	require.NoError(t, err)
	f.bookings.AssertExpectations(t)
}

func TestCancelBooking_NotOwned(t *testing.T) {
	f := newFlowFixture(t)
	f.bookings.On("ListByClient", mock.Anything, "client-2").Return([]models.Booking{}, nil)

	err := f.svc.CancelBooking(context.Background(), "booking-1", "client-2")

	assert.True(t, IsCode(err, CodeDataUnavailable))
	f.bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelBooking_AlreadyCompleted(t *testing.T) {
	f := newFlowFixture(t)
	f.bookings.On("ListByClient", mock.Anything, "client-1").Return([]models.Booking{
		{ID: "booking-1", ClientID: "client-1", Status: models.BookingStatusCompleted},
	}, nil)

	err := f.svc.CancelBooking(context.Background(), "booking-1", "client-1")

	assert.True(t, IsCode(err, CodeInvalidFlowTransition))
	f.bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestGatewayResult_BookingWriteFailure(t *testing.T) {
	f := newFlowFixture(t)
	orderID := uuid.New().String()
	session := f.seedSession(models.FlowAwaitingResult, []string{"10:00"}, orderID)

	f.bookings.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	err := f.svc.HandleGatewayResult(context.Background(), models.GatewayResult{
		OrderID: orderID,
		Status:  models.GatewayStatusSuccess,
	})

	assert.True(t, IsCode(err, CodePaymentResult))
	// The session survives so support can reconcile manually.
	_, getErr := f.sessions.Get(context.Background(), session.SessionID)
	assert.NoError(t, getErr)
}

// File: streambook/services/booking/confirmation.go
package booking

import (
	"context"
	"fmt"
	"time"

	"streambook/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Confirm begins the payment handshake for a session: it requires an
// authenticated user and a non-empty selection, opens a charge with the
// gateway, and parks the session awaiting the asynchronous result. A failed
// charge creation returns the session to idle.
func (s *DefaultBookingService) Confirm(ctx context.Context, sessionID, userID string) (*models.BookingSession, error) {
	if userID == "" {
		return nil, NewFlowError(CodeNotAuthenticated, "sign in to confirm a booking", nil)
	}
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != models.FlowIdle {
		return nil, NewFlowError(CodeInvalidFlowTransition,
			"payment already in progress for this session", nil)
	}
	if len(session.Request.SelectedHours) == 0 {
		return nil, NewFlowError(CodeEmptySelection, "select at least one hour", nil)
	}

	session.Request.ClientID = userID
	session.State = models.FlowAwaitingToken
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	orderID := uuid.New().String()
	price := CalculatePrice(session.Request.BasePrice, len(session.Request.SelectedHours))
	charge, err := s.Gateway.CreateCharge(ctx, models.ChargeRequest{
		OrderID:  orderID,
		Amount:   price.Total,
		Currency: "idr",
		PayerID:  userID,
		Description: fmt.Sprintf("Streaming session on %s, %d hour(s)",
			session.Request.Date, len(session.Request.SelectedHours)),
		Metadata: map[string]string{
			"sessionId":  session.SessionID,
			"streamerId": session.Request.StreamerID,
			"platform":   session.Request.Platform,
		},
	})
	if err != nil {
		session.State = models.FlowIdle
		if saveErr := s.Sessions.Save(ctx, session); saveErr != nil {
			s.Logger.Error("confirm: failed to reset session after charge error",
				zap.String("sessionId", sessionID), zap.Error(saveErr))
		}
		return nil, NewFlowError(CodePaymentInit, "could not start payment", err)
	}

	session.OrderID = charge.OrderID
	session.Token = charge.Token
	session.State = models.FlowAwaitingResult
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	if err := s.Sessions.IndexOrder(ctx, charge.OrderID, session.SessionID); err != nil {
		s.Logger.Error("confirm: failed to index order",
			zap.String("orderId", charge.OrderID), zap.Error(err))
	}
	return session, nil
}

// HandleGatewayResult consumes the single asynchronous result the gateway
// delivers per order. On success the booking is persisted at pending status
// and both parties get a confirmation record; notification or reminder
// failures are logged and never roll the booking back. A malformed order id
// aborts the success handler before anything is written, since money has
// already moved and retrying a charge is unsafe.
func (s *DefaultBookingService) HandleGatewayResult(ctx context.Context, res models.GatewayResult) error {
	if res.Status == models.GatewayStatusSuccess {
		if _, err := uuid.Parse(res.OrderID); err != nil {
			return NewFlowError(CodeInvalidOrderID,
				"payment succeeded but the order reference is malformed; contact support", err)
		}
	}

	sessionID, err := s.Sessions.SessionIDForOrder(ctx, res.OrderID)
	if err != nil {
		return err
	}
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.State != models.FlowAwaitingResult && session.State != models.FlowPending {
		return NewFlowError(CodeInvalidFlowTransition,
			"gateway result for a session not awaiting payment", nil)
	}

	switch res.Status {
	case models.GatewayStatusSuccess:
		return s.completeBooking(ctx, session)

	case models.GatewayStatusPending:
		// Token stays open so the user can retry or complete the payment.
		session.State = models.FlowPending
		return s.Sessions.Save(ctx, session)

	case models.GatewayStatusError:
		session.State = models.FlowIdle
		session.Token = ""
		session.OrderID = ""
		if err := s.Sessions.Save(ctx, session); err != nil {
			return err
		}
		return NewFlowError(CodePaymentResult, res.Message, nil)

	default:
		return NewFlowError(CodePaymentResult, "unknown gateway status "+res.Status, nil)
	}
}

func (s *DefaultBookingService) completeBooking(ctx context.Context, session *models.BookingSession) error {
	hours := session.Request.SelectedHours
	price := CalculatePrice(session.Request.BasePrice, len(hours))

	endHour, _ := parseHour(hours[len(hours)-1])
	booking := models.Booking{
		ID:         uuid.New().String(),
		StreamerID: session.Request.StreamerID,
		ClientID:   session.Request.ClientID,
		Date:       session.Request.Date,
		StartTime:  hours[0],
		EndTime:    formatHour(endHour + 1),
		Status:     models.BookingStatusPending,
		Platform:   session.Request.Platform,
		TotalPrice: float64(price.Total),
		OrderID:    session.OrderID,
		CreatedAt:  time.Now(),
	}
	if err := s.Bookings.Create(ctx, &booking); err != nil {
		// Money has moved; surface support contact rather than retrying.
		return NewFlowError(CodePaymentResult,
			"payment succeeded but the booking could not be recorded; contact support", err)
	}

	ownerID := ""
	if streamer, err := s.Streamers.GetByID(ctx, booking.StreamerID); err != nil {
		s.Logger.Error("booking confirmed but streamer lookup failed",
			zap.String("bookingId", booking.ID), zap.Error(err))
	} else {
		ownerID = streamer.OwnerUserID
	}
	if err := s.Notifier.RecordBookingConfirmation(ctx, booking, ownerID); err != nil {
		s.Logger.Error("booking confirmed but notification write failed",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}
	if s.Reminders != nil {
		if err := s.Reminders.ScheduleSessionReminder(booking); err != nil {
			s.Logger.Error("booking confirmed but reminder scheduling failed",
				zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}

	// The request is consumed; drop the session and its order index.
	session.State = models.FlowSucceeded
	if err := s.Sessions.Delete(ctx, session); err != nil {
		s.Logger.Warn("failed to drop completed session",
			zap.String("sessionId", session.SessionID), zap.Error(err))
	}
	return nil
}

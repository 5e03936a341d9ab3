package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"streambook/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	sessionKeyPrefix = "booking:session:"
	orderKeyPrefix   = "booking:order:"
)

// SessionRepository holds in-flight booking sessions keyed by session ID,
// with an orderID index so gateway callbacks can find their session.
type SessionRepository interface {
	Create(ctx context.Context, req models.BookingRequest) (*models.BookingSession, error)
	Get(ctx context.Context, sessionID string) (*models.BookingSession, error)
	Save(ctx context.Context, session *models.BookingSession) error
	Delete(ctx context.Context, session *models.BookingSession) error
	IndexOrder(ctx context.Context, orderID, sessionID string) error
	SessionIDForOrder(ctx context.Context, orderID string) (string, error)
}

// SessionStore keeps booking sessions in Redis as JSON with a TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a session store with the given TTL.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Create opens a new idle session around the request.
func (s *SessionStore) Create(ctx context.Context, req models.BookingRequest) (*models.BookingSession, error) {
	session := &models.BookingSession{
		SessionID: uuid.New().String(),
		Request:   req,
		State:     models.FlowIdle,
		CreatedAt: time.Now(),
	}
	if err := s.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get loads a session; a missing or expired session maps to sessionNotFound.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return nil, NewFlowError(CodeSessionNotFound, "booking session not found or expired", err)
	}
	var session models.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse booking session: %w", err)
	}
	return &session, nil
}

// Save stores the session and refreshes its TTL.
func (s *SessionStore) Save(ctx context.Context, session *models.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+session.SessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache booking session: %w", err)
	}
	return nil
}

// Delete discards the session and, if set, its order index.
func (s *SessionStore) Delete(ctx context.Context, session *models.BookingSession) error {
	keys := []string{sessionKeyPrefix + session.SessionID}
	if session.OrderID != "" {
		keys = append(keys, orderKeyPrefix+session.OrderID)
	}
	return s.client.Del(ctx, keys...).Err()
}

// IndexOrder records orderID -> sessionID for webhook correlation. The index
// outlives the session TTL slightly so late gateway results still resolve.
func (s *SessionStore) IndexOrder(ctx context.Context, orderID, sessionID string) error {
	return s.client.Set(ctx, orderKeyPrefix+orderID, sessionID, s.ttl+10*time.Minute).Err()
}

// SessionIDForOrder resolves the session a gateway result belongs to.
func (s *SessionStore) SessionIDForOrder(ctx context.Context, orderID string) (string, error) {
	id, err := s.client.Get(ctx, orderKeyPrefix+orderID).Result()
	if err != nil {
		return "", NewFlowError(CodeSessionNotFound, "no session for order "+orderID, err)
	}
	return id, nil
}

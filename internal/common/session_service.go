package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"placement-experiment/praxis/internal/constants"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionData is what the cookie-backed session stores about a user
type SessionData struct {
	SessionID string         `json:"session_id"`
	UserID    string         `json:"user_id"`
	Role      constants.Role `json:"role"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// SessionService manages user sessions in Redis
type SessionService struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewSessionService creates a new session service
func NewSessionService(redis *redis.Client) *SessionService {
	return &SessionService{
		redis: redis,
		ttl:   constants.TokenTTLHours * time.Hour,
	}
}

// CreateSession creates a new session for a user
func (s *SessionService) CreateSession(ctx context.Context, userID string, role constants.Role, name, email string) (string, error) {
	sessionID := uuid.New().String()

	now := time.Now()
	session := SessionData{
		SessionID: sessionID,
		UserID:    userID,
		Role:      role,
		Name:      name,
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.redis.Set(ctx, "session:"+sessionID, data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return sessionID, nil
}

// GetSession retrieves a session from Redis
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*SessionData, error) {
	val, err := s.redis.Get(ctx, "session:"+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.New("session not found")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		s.DeleteSession(ctx, sessionID) // Clean up expired session
		return nil, errors.New("session expired")
	}

	return &session, nil
}

// DeleteSession deletes a session from Redis
func (s *SessionService) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.redis.Del(ctx, "session:"+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// RefreshSession extends the session expiration
func (s *SessionService) RefreshSession(ctx context.Context, sessionID string) error {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}

	session.ExpiresAt = time.Now().Add(s.ttl)

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.redis.Set(ctx, "session:"+session.SessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to refresh session: %w", err)
	}

	return nil
}

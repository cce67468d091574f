package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record referenced by the client's token.
type Session struct {
	ID             uuid.UUID         `json:"id"`
	Token          string            `json:"token"`
	UserID         *uuid.UUID        `json:"user_id,omitempty"`
	Data           map[string]string `json:"data,omitempty"`
	ExpiresAt      time.Time         `json:"expires_at"`
	LastActivityAt time.Time         `json:"last_activity_at"`
	CreatedAt      time.Time         `json:"created_at"`
}

func newSession(token string, userID *uuid.UUID, now time.Time, expiresAt time.Time) *Session {
	return &Session{
		ID:             uuid.New(),
		Token:          token,
		UserID:         userID,
		Data:           make(map[string]string),
		ExpiresAt:      expiresAt,
		LastActivityAt: now,
		CreatedAt:      now,
	}
}

func (s *Session) IsAuthenticated() bool {
	return s != nil && s.UserID != nil
}

func (s *Session) IsExpired(now time.Time) bool {
	return s != nil && !now.Before(s.ExpiresAt)
}

func (s *Session) Get(key string) (string, bool) {
	if s == nil || s.Data == nil {
		return "", false
	}
	v, ok := s.Data[key]
	return v, ok
}

func (s *Session) Set(key, value string) {
	if s == nil {
		return
	}
	if s.Data == nil {
		s.Data = make(map[string]string)
	}
	s.Data[key] = value
}

func (s *Session) clone() *Session {
	c := *s
	if s.UserID != nil {
		id := *s.UserID
		c.UserID = &id
	}
	if s.Data != nil {
		c.Data = make(map[string]string, len(s.Data))
		for k, v := range s.Data {
			c.Data[k] = v
		}
	}
	return &c
}

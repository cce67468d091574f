package session

import (
	"context"

	"github.com/google/uuid"
)

type sessionContextKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(*Session)
	return s, ok
}

// UserIDFromContext returns the user bound to the session in context.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	s, ok := FromContext(ctx)
	if !ok || !s.IsAuthenticated() {
		return uuid.Nil, false
	}
	return *s.UserID, true
}

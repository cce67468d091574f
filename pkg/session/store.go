package session

import "context"

// Store persists sessions by token. Get returns ErrSessionNotFound for
// unknown or expired tokens. Implementations expire records on their own.
type Store interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Storage persists users. Lookups return ErrUserNotFound on a miss and
// CreateUser returns ErrEmailAlreadyExists when the email is taken.
type Storage interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	UpdateActive(ctx context.Context, id uuid.UUID, active bool) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

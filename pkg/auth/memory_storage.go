package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage keeps users in process memory. Records are copied on the way
// in and out so callers cannot mutate stored state.
type MemoryStorage struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*User
	byEmail map[string]uuid.UUID
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		byID:    make(map[uuid.UUID]*User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (m *MemoryStorage) CreateUser(_ context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[user.Email]; exists {
		return ErrEmailAlreadyExists
	}

	m.byID[user.ID] = cloneUser(user)
	m.byEmail[user.Email] = user.ID
	return nil
}

func (m *MemoryStorage) GetUserByID(_ context.Context, id uuid.UUID) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (m *MemoryStorage) GetUserByEmail(_ context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return cloneUser(m.byID[id]), nil
}

func (m *MemoryStorage) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	return m.update(id, func(u *User) { u.PasswordHash = hash })
}

func (m *MemoryStorage) UpdateActive(_ context.Context, id uuid.UUID, active bool) error {
	return m.update(id, func(u *User) { u.IsActive = active })
}

func (m *MemoryStorage) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	return m.update(id, func(u *User) { u.LastLoginAt = &at })
}

// Len returns the number of stored users.
func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}

func (m *MemoryStorage) update(id uuid.UUID, fn func(*User)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.byID[id]
	if !ok {
		return ErrUserNotFound
	}
	fn(u)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func cloneUser(u *User) *User {
	c := *u
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		c.LastLoginAt = &t
	}
	return &c
}

var _ Storage = (*MemoryStorage)(nil)

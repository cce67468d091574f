package session

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps sessions in a go-cache instance. Suitable for a single
// process; sessions are lost on restart.
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore creates a store whose janitor purges expired entries every
// cleanupInterval. Zero disables the janitor.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(cache.NoExpiration, cleanupInterval)}
}

func (s *MemoryStore) Save(_ context.Context, sess *Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		s.cache.Delete(sess.Token)
		return nil
	}
	s.cache.Set(sess.Token, sess.clone(), ttl)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	v, ok := s.cache.Get(token)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return v.(*Session).clone(), nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.cache.Delete(token)
	return nil
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	return s.cache.ItemCount()
}

var _ Store = (*MemoryStore)(nil)

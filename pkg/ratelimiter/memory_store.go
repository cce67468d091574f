package ratelimiter

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

type bucketState struct {
	tokens     int
	lastRefill time.Time
}

// MemoryStore keeps buckets in process. Idle buckets expire once they would
// have refilled completely.
type MemoryStore struct {
	mu    sync.Mutex
	cache *cache.Cache
	now   func() time.Time
}

type MemoryStoreOption func(*MemoryStore)

func WithClock(now func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		cache: cache.New(cache.NoExpiration, 5*time.Minute),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) ConsumeTokens(_ context.Context, key string, tokens int, cfg Config) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	b := bucketState{tokens: cfg.Capacity, lastRefill: now}
	if v, ok := s.cache.Get(key); ok {
		b = v.(bucketState)
	}

	// Cap the interval count so a long idle period cannot overflow.
	maxIntervals := int64(cfg.Capacity/cfg.RefillRate + 1)
	if intervals := int(min(int64(now.Sub(b.lastRefill)/cfg.RefillInterval), maxIntervals)); intervals > 0 {
		b.tokens = min(b.tokens+intervals*cfg.RefillRate, cfg.Capacity)
		b.lastRefill = now
	}

	// Rejected requests do not dig the bucket deeper.
	remaining := b.tokens - tokens
	if remaining >= 0 {
		b.tokens = remaining
	}

	fullIn := time.Duration((cfg.Capacity-b.tokens+cfg.RefillRate-1)/cfg.RefillRate+1) * cfg.RefillInterval
	s.cache.Set(key, b, fullIn)

	return remaining, b.lastRefill.Add(cfg.RefillInterval), nil
}

func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}

var _ Store = (*MemoryStore)(nil)

package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "session:"

// RedisStore keeps sessions as JSON values with a TTL matching ExpiresAt.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, sess.Token)
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Join(ErrStore, err)
	}
	if err := s.client.Set(ctx, s.key(sess.Token), data, ttl).Err(); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Join(ErrStore, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, errors.Join(ErrStore, err)
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

func (s *RedisStore) key(token string) string {
	return s.prefix + token
}

var _ Store = (*RedisStore)(nil)

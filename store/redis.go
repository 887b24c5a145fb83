package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on a shared Redis client.
type RedisStore struct {
	rc *redis.Client
}

// NewRedisStore wraps an initialized Redis client.
func NewRedisStore(rc *redis.Client) *RedisStore {
	return &RedisStore{rc: rc}
}

// Get unmarshals the value at key into out.
func (s *RedisStore) Get(ctx context.Context, key string, out interface{}) (bool, error) {
	b, err := s.rc.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

// Set writes a JSON value with a TTL. ttl <= 0 stores without expiry.
func (s *RedisStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}
	return s.rc.Set(ctx, key, b, ttl).Err()
}

// SetPermanent writes a JSON value with no expiry.
func (s *RedisStore) SetPermanent(ctx context.Context, key string, value interface{}) error {
	return s.Set(ctx, key, value, 0)
}

// updateRetries bounds the WATCH retry loop under write contention.
const updateRetries = 5

// Update runs fn under WATCH/MULTI: if another client writes the key between
// the read and the write, the transaction fails and fn is retried on the new
// value.
func (s *RedisStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	for i := 0; i < updateRetries; i++ {
		err := s.rc.Watch(ctx, func(tx *redis.Tx) error {
			current, err := tx.Get(ctx, key).Bytes()
			found := true
			if err != nil {
				if !errors.Is(err, redis.Nil) {
					return err
				}
				found = false
				current = nil
			}
			next, err := fn(current, found)
			if err != nil {
				return err
			}
			b, err := json.Marshal(next)
			if err != nil {
				return err
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, b, 0)
				return nil
			})
			return err
		}, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("update %s: key kept changing under watch", key)
}

// Delete removes a key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.rc.Del(ctx, key).Err()
}

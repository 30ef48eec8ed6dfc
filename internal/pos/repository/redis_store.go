package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tair/tiffin-pos/internal/pos/domain"
	"github.com/tair/tiffin-pos/pkg/logger"
)

// RedisStore keeps each record under one string key. Atomic uses WATCH/MULTI,
// so two terminals sharing one Redis cannot interleave a checkout.
type RedisStore struct {
	client     *redis.Client
	prefix     string
	maxRetries int
}

// NewRedisStore wraps an existing client. maxRetries bounds optimistic retries in Atomic.
func NewRedisStore(client *redis.Client, prefix string, maxRetries int) *RedisStore {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &RedisStore{client: client, prefix: prefix, maxRetries: maxRetries}
}

func (s *RedisStore) key(k string) string {
	return s.prefix + k
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Atomic(ctx context.Context, keys []string, fn AtomicFunc) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}

	txf := func(tx *redis.Tx) error {
		values, err := tx.MGet(ctx, full...).Result()
		if err != nil {
			return fmt.Errorf("redis mget: %w", err)
		}

		current := make(map[string][]byte, len(keys))
		for i, v := range values {
			if str, ok := v.(string); ok {
				current[keys[i]] = []byte(str)
			}
		}

		changed, err := fn(current)
		if err != nil {
			return err
		}
		if len(changed) == 0 {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for k, v := range changed {
				pipe.Set(ctx, s.key(k), v, 0)
			}
			return nil
		})
		return err
	}

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		err := s.client.Watch(ctx, txf, full...)
		if err == nil {
			return nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		logger.Debug(ctx).
			Int("attempt", attempt).
			Strs("keys", keys).
			Msg("Optimistic transaction lost a race, retrying")
	}

	return fmt.Errorf("redis atomic update after %d attempts: %w", s.maxRetries, domain.ErrConflict)
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

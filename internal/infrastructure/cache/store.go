// Package cache provides the key/value store behind token revocation,
// dashboard statistics and gateway notification de-duplication.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired
var ErrMiss = errors.New("cache miss")

// Store is a TTL key/value store
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// SetNX stores value only when key is absent and reports whether it did
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Remember returns the cached JSON value for key, computing and storing it
// with fn on a miss. Store errors fall through to fn.
func Remember[T any](ctx context.Context, s Store, key string, ttl time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if s != nil && ttl > 0 {
		if raw, err := s.Get(ctx, key); err == nil {
			var v T
			if json.Unmarshal(raw, &v) == nil {
				return v, nil
			}
		}
	}

	v, err := fn(ctx)
	if err != nil || s == nil || ttl <= 0 {
		return v, err
	}
	if raw, mErr := json.Marshal(v); mErr == nil {
		_ = s.Set(ctx, key, raw, ttl)
	}
	return v, nil
}

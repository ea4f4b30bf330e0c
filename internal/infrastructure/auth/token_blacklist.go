package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kitabayar/backend/internal/infrastructure/cache"
)

// TokenBlacklist revokes tokens before they expire
type TokenBlacklist interface {
	// Revoke blocks a token id for ttl, normally the token's remaining lifetime
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// RevokeUser blocks every token of the user issued at or before now
	RevokeUser(ctx context.Context, userID string, now time.Time, ttl time.Duration) error
	IsUserRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error)
}

// StoreBlacklist implements TokenBlacklist on a cache.Store, so revocations
// are shared between instances when the store is Redis.
type StoreBlacklist struct {
	store cache.Store
}

// NewStoreBlacklist creates a blacklist backed by store
func NewStoreBlacklist(store cache.Store) *StoreBlacklist {
	return &StoreBlacklist{store: store}
}

func jtiKey(jti string) string     { return "auth:revoked:jti:" + jti }
func userKey(userID string) string { return "auth:revoked:user:" + userID }

// Revoke adds a token id to the blacklist
func (b *StoreBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.store.Set(ctx, jtiKey(jti), []byte("1"), ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked checks whether a token id is blacklisted
func (b *StoreBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_, err := b.store.Get(ctx, jtiKey(jti))
	if errors.Is(err, cache.ErrMiss) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return true, nil
}

// RevokeUser stores now as the user's revocation time
func (b *StoreBlacklist) RevokeUser(ctx context.Context, userID string, now time.Time, ttl time.Duration) error {
	v := strconv.FormatInt(now.UnixNano(), 10)
	if err := b.store.Set(ctx, userKey(userID), []byte(v), ttl); err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}
	return nil
}

// IsUserRevoked reports whether a token issued at issuedAt predates the user's revocation
func (b *StoreBlacklist) IsUserRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error) {
	raw, err := b.store.Get(ctx, userKey(userID))
	if errors.Is(err, cache.ErrMiss) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user revocation: %w", err)
	}

	revokedAt, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return false, fmt.Errorf("failed to parse revocation time: %w", err)
	}
	// iat has second precision
	return issuedAt.Unix() <= time.Unix(0, revokedAt).Unix(), nil
}

var _ TokenBlacklist = (*StoreBlacklist)(nil)

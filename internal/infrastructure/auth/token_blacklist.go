package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	appidentity "github.com/wims/backend/internal/application/identity"
)

const blacklistKeyPrefix = "wims:token:revoked:"

// RedisTokenBlacklist stores revoked token IDs in Redis. Entries expire
// together with the token they revoke, so the set never needs cleanup.
type RedisTokenBlacklist struct {
	client *redis.Client
}

// NewRedisTokenBlacklist creates a new RedisTokenBlacklist
func NewRedisTokenBlacklist(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

// Revoke marks a token ID as unusable until it would have expired
func (b *RedisTokenBlacklist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		// Already expired, nothing to revoke
		return nil
	}
	return b.client.Set(ctx, blacklistKeyPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether a token ID has been revoked
func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := b.client.Get(ctx, blacklistKeyPrefix+tokenID).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

var _ appidentity.TokenBlacklist = (*RedisTokenBlacklist)(nil)

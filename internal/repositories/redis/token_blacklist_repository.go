package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	portsrepo "github.com/albaraka/albaraka-digital-backend/internal/core/ports/repositories"
)

const blacklistKeyPrefix = "token:blacklist:"

// RedisTokenBlacklistRepository stores revoked JWTs in Redis keyed by the raw
// token string, with a TTL matching the token's remaining lifetime.
type RedisTokenBlacklistRepository struct {
	client *redis.Client
}

// NewRedisTokenBlacklistRepository creates a Redis-backed token blacklist.
func NewRedisTokenBlacklistRepository(client *redis.Client) portsrepo.TokenBlacklistRepository {
	return &RedisTokenBlacklistRepository{client: client}
}

var _ portsrepo.TokenBlacklistRepository = (*RedisTokenBlacklistRepository)(nil)

// BlacklistToken stores the token until its natural expiry. A non-positive
// TTL means the token is already expired and there is nothing to record.
func (r *RedisTokenBlacklistRepository) BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, blacklistKeyPrefix+token, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// IsTokenBlacklisted reports whether the token has been revoked.
func (r *RedisTokenBlacklistRepository) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	err := r.client.Get(ctx, blacklistKeyPrefix+token).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return true, nil
}

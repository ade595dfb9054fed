package repositories

import (
	"context"
	"time"
)

// TokenBlacklistRepository records logged-out JWTs until their natural expiry
// so the auth middleware can reject them.
type TokenBlacklistRepository interface {
	// BlacklistToken stores the token for the given TTL.
	BlacklistToken(ctx context.Context, token string, ttl time.Duration) error

	// IsTokenBlacklisted reports whether the token has been blacklisted.
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

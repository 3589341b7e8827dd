package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revoked session tokens and consumed reset tokens live in redis so that a
// logout in one process is visible to every other. A nil client degrades to
// no-op, which keeps local development working without a redis instance.

func RevokeToken(ctx context.Context, rdb *redis.Client, jti string, ttl time.Duration) error {
	if rdb == nil || jti == "" {
		return nil
	}
	if ttl <= 0 {
		return nil
	}

	key := fmt.Sprintf("session:revoked:%s", jti)
	return rdb.Set(ctx, key, "revoked", ttl).Err()
}

func IsTokenRevoked(ctx context.Context, rdb *redis.Client, jti string) (bool, error) {
	if rdb == nil || jti == "" {
		return false, nil
	}

	key := fmt.Sprintf("session:revoked:%s", jti)
	n, err := rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation in redis: %w", err)
	}

	return n > 0, nil
}

// ConsumeResetToken marks a password-reset token as used. It reports false
// when the token was consumed before.
func ConsumeResetToken(ctx context.Context, rdb *redis.Client, jti string, ttl time.Duration) (bool, error) {
	if rdb == nil || jti == "" {
		return true, nil
	}

	key := fmt.Sprintf("reset:used:%s", jti)
	wasSet, err := rdb.SetNX(ctx, key, "used", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark reset token in redis: %w", err)
	}

	return wasSet, nil
}

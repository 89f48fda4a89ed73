package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Rate-limited actions. Each action holds a single lock per subject.
const (
	ActionVerificationCode = "verification_code"
	ActionPasswordReset    = "password_reset"
)

// AcquireRateLimit takes the lock for (subject, action) atomically via
// SetNX. It returns false when a previous acquisition is still live, in
// which case the caller should answer with a 429-equivalent. A nil client
// disables limiting (local development).
func AcquireRateLimit(ctx context.Context, rdb *redis.Client, subject, action string, window time.Duration) (bool, error) {
	if rdb == nil {
		return true, nil
	}

	key := fmt.Sprintf("rate_limit:%s:%s", action, subject)
	wasSet, err := rdb.SetNX(ctx, key, "locked", window).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}
	return wasSet, nil
}

// ReleaseRateLimit drops the lock early, e.g. after the guarded action
// completed and repeating it is harmless.
func ReleaseRateLimit(ctx context.Context, rdb *redis.Client, subject, action string) error {
	if rdb == nil {
		return nil
	}
	key := fmt.Sprintf("rate_limit:%s:%s", action, subject)
	_, err := rdb.Del(ctx, key).Result()
	return err
}

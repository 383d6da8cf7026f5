package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/moringa/darasa-api/utils/logger"
	"github.com/moringa/darasa-api/utils/response"
)

// AttemptStore is the subset of the Redis cache the lockout logic needs
type AttemptStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Increment(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}

const attemptWindow = 15 * time.Minute

// BruteForceProtection locks out IPs after repeated failed logins. A nil
// *BruteForceProtection is valid and does nothing.
type BruteForceProtection struct {
	store AttemptStore
}

// NewBruteForceProtection creates a new brute force protection instance
func NewBruteForceProtection(store AttemptStore) *BruteForceProtection {
	return &BruteForceProtection{store: store}
}

func attemptKey(ip string) string { return fmt.Sprintf("brute_force:attempts:%s", ip) }
func lockKey(ip string) string    { return fmt.Sprintf("brute_force:lock:%s", ip) }

// CheckLock rejects requests from a locked IP with 429 and Retry-After
func (b *BruteForceProtection) CheckLock() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if b == nil || b.store == nil {
			return c.Next()
		}

		ctx := c.UserContext()
		key := lockKey(c.IP())

		locked, err := b.store.Exists(ctx, key)
		if err != nil {
			// Redis trouble must not block logins
			logger.Warn().Err(err).Msg("brute force lock check failed")
			return c.Next()
		}
		if !locked {
			return c.Next()
		}

		ttl, _ := b.store.TTL(ctx, key)
		retryAfter := int(ttl.Seconds())
		if retryAfter <= 0 {
			retryAfter = 60
		}

		c.Set(fiber.HeaderRetryAfter, fmt.Sprintf("%d", retryAfter))
		return response.TooManyRequests(c, fmt.Sprintf("Too many failed attempts. Try again in %d seconds", retryAfter))
	}
}

// lockoutFor returns the lock duration earned by the given attempt count
func lockoutFor(attempts int64) time.Duration {
	switch {
	case attempts >= 25:
		return 24 * time.Hour
	case attempts >= 10:
		return time.Hour
	case attempts >= 5:
		return 2 * time.Minute
	}
	return 0
}

// RecordFailedAttempt counts a failed login and applies progressive lockouts
func (b *BruteForceProtection) RecordFailedAttempt(ctx context.Context, ip string) {
	if b == nil || b.store == nil {
		return
	}

	attempts, err := b.store.Increment(ctx, attemptKey(ip))
	if err != nil {
		logger.Warn().Err(err).Str("ip", ip).Msg("failed to record login attempt")
		return
	}
	if attempts == 1 {
		_ = b.store.Expire(ctx, attemptKey(ip), attemptWindow)
	}

	if d := lockoutFor(attempts); d > 0 {
		if err := b.store.Set(ctx, lockKey(ip), "locked", d); err != nil {
			logger.Warn().Err(err).Str("ip", ip).Msg("failed to lock ip")
			return
		}
		logger.Warn().Str("ip", ip).Int64("attempts", attempts).Dur("lockout", d).Msg("ip locked after failed logins")
	}
}

// RecordSuccessfulAttempt clears failed attempts on successful login
func (b *BruteForceProtection) RecordSuccessfulAttempt(ctx context.Context, ip string) {
	if b == nil || b.store == nil {
		return
	}
	_ = b.store.Delete(ctx, attemptKey(ip), lockKey(ip))
}

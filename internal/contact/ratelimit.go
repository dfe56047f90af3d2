package contact

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	submitMaxAttempts = 5
	submitAttemptTTL  = 10 * time.Minute
)

// RateLimiter caps contact submissions per client IP.
type RateLimiter struct {
	Redis *redis.Client
}

func (r *RateLimiter) submitKey(ip string) string {
	return "contact_attempts:" + ip
}

// Allow counts one submission from ip. When the limit is exceeded it returns
// false and the time left until the window resets.
func (r *RateLimiter) Allow(ctx context.Context, ip string) (bool, time.Duration, error) {
	key := r.submitKey(ip)

	attempts, err := r.Redis.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}
	if attempts == 1 {
		r.Redis.Expire(ctx, key, submitAttemptTTL)
	}
	if attempts > submitMaxAttempts {
		ttl, _ := r.Redis.TTL(ctx, key).Result()
		return false, ttl, nil
	}
	return true, 0, nil
}

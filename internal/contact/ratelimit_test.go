package contact

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRateLimiterAllow(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	limiter := &RateLimiter{Redis: client}
	ctx := context.Background()

	for i := 0; i < submitMaxAttempts; i++ {
		ok, _, err := limiter.Allow(ctx, "203.0.113.7")
		if err != nil || !ok {
			t.Fatalf("attempt %d = %v, %v, want allowed", i+1, ok, err)
		}
	}

	ok, retry, err := limiter.Allow(ctx, "203.0.113.7")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if ok {
		t.Fatal("attempt over limit allowed")
	}
	if retry <= 0 || retry > submitAttemptTTL {
		t.Fatalf("retry = %v, want within (0, %v]", retry, submitAttemptTTL)
	}

	if ok, _, _ := limiter.Allow(ctx, "198.51.100.1"); !ok {
		t.Fatal("other IP was limited")
	}

	mr.FastForward(submitAttemptTTL + time.Second)
	if ok, _, _ := limiter.Allow(ctx, "203.0.113.7"); !ok {
		t.Fatal("limit not reset after window")
	}
}

func TestRateLimiterRedisDown(t *testing.T) {
	t.Parallel()

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	defer client.Close()

	if _, _, err := (&RateLimiter{Redis: client}).Allow(context.Background(), "203.0.113.7"); err == nil {
		t.Fatal("Allow error = nil, want error")
	}
}

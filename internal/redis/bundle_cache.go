package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"localesite/internal/i18n"
)

// BundleCache keeps parsed translation bundles in Redis so that every replica
// shares one copy and file reads happen once per TTL.
type BundleCache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func (c *BundleCache) key(locale string) string {
	return "i18n:bundle:" + locale
}

func (c *BundleCache) Get(ctx context.Context, locale string) (i18n.Messages, bool, error) {
	raw, err := c.Redis.Get(ctx, c.key(locale)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var msgs i18n.Messages
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil, false, err
	}
	return msgs, true, nil
}

func (c *BundleCache) Set(ctx context.Context, locale string, msgs i18n.Messages) error {
	raw, err := json.Marshal(msgs)
	if err != nil {
		return err
	}
	return c.Redis.Set(ctx, c.key(locale), raw, c.TTL).Err()
}

// Invalidate drops the cached bundles for the given locales.
func (c *BundleCache) Invalidate(ctx context.Context, locales ...string) error {
	if len(locales) == 0 {
		return nil
	}
	keys := make([]string, 0, len(locales))
	for _, l := range locales {
		keys = append(keys, c.key(l))
	}
	return c.Redis.Del(ctx, keys...).Err()
}

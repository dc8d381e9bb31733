package blob

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const signCachePrefix = "blob:sign:"

// SignCache memoizes signed URLs in Redis. Entries expire well before the
// URLs themselves so a cached URL always has time left.
type SignCache struct {
	next   Store
	client *redis.Client
	ttl    time.Duration
}

var _ Store = (*SignCache)(nil)

// NewSignCache wraps next. urlTTL is the validity of the URLs next signs.
func NewSignCache(next Store, client *redis.Client, urlTTL time.Duration) *SignCache {
	return &SignCache{next: next, client: client, ttl: urlTTL / 2}
}

func (c *SignCache) Put(ctx context.Context, data []byte, ext string) (string, error) {
	return c.next.Put(ctx, data, ext)
}

func (c *SignCache) Sign(ctx context.Context, key string) (string, error) {
	url, err := c.client.Get(ctx, signCachePrefix+key).Result()
	if err == nil {
		return url, nil
	}
	if !errors.Is(err, redis.Nil) {
		slog.WarnContext(ctx, "sign cache read failed", "key", key, "error", err)
	}

	url, err = c.next.Sign(ctx, key)
	if err != nil {
		return "", err
	}
	if c.ttl > 0 {
		if err := c.client.Set(ctx, signCachePrefix+key, url, c.ttl).Err(); err != nil {
			slog.WarnContext(ctx, "sign cache write failed", "key", key, "error", err)
		}
	}
	return url, nil
}

func (c *SignCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, signCachePrefix+key).Err(); err != nil {
		slog.WarnContext(ctx, "sign cache evict failed", "key", key, "error", err)
	}
	return c.next.Delete(ctx, key)
}

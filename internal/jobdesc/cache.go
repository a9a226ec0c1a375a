package jobdesc

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"jobassist-backend/internal/shared/util"
)

// Cache stores extracted descriptions by URL.
type Cache interface {
	Get(ctx context.Context, url string) (string, bool, error)
	Set(ctx context.Context, url, text string, ttl time.Duration) error
}

// RedisCache implements Cache on Redis string keys.
type RedisCache struct {
	Client *redis.Client
	Prefix string
}

// NewRedisCache constructs a RedisCache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{Client: client, Prefix: "jobdesc:"}
}

func (c *RedisCache) key(url string) string {
	return c.Prefix + util.ShortHash(url)
}

func (c *RedisCache) Get(ctx context.Context, url string) (string, bool, error) {
	text, err := c.Client.Get(ctx, c.key(url)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

func (c *RedisCache) Set(ctx context.Context, url, text string, ttl time.Duration) error {
	return c.Client.Set(ctx, c.key(url), text, ttl).Err()
}

// pkg/cache/redis.go
package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"quiz-portal/pkg/storage"
)

// RedisCache is a storage.Store kept under "<namespace>:<key>" in Redis.
type RedisCache struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

func NewRedisCache(addr, namespace string) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client:    client,
		namespace: namespace,
	}
}

// WithNamespace returns a store sharing the same connection under another prefix.
func (c *RedisCache) WithNamespace(namespace string) *RedisCache {
	return &RedisCache{
		client:    c.client,
		namespace: namespace,
		ttl:       c.ttl,
	}
}

// WithTTL sets the expiry applied on every Set. Zero keeps keys forever.
func (c *RedisCache) WithTTL(ttl time.Duration) *RedisCache {
	c.ttl = ttl
	return c
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return errors.Wrap(c.client.Ping(ctx).Err(), "redis ping")
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) key(k string) string {
	return c.namespace + ":" + k
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	v, err := c.client.Get(ctx, c.key(key)).Result()
	if err == redis.Nil {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "redis get %s", key)
	}
	return v, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string) error {
	err := c.client.Set(ctx, c.key(key), value, c.ttl).Err()
	return errors.Wrapf(err, "redis set %s", key)
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	err := c.client.Del(ctx, c.key(key)).Err()
	return errors.Wrapf(err, "redis del %s", key)
}

// Clear removes every key under the namespace.
func (c *RedisCache) Clear(ctx context.Context) error {
	var keys []string
	iter := c.client.Scan(ctx, 0, c.namespace+":*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return errors.Wrap(err, "redis scan")
	}
	if len(keys) == 0 {
		return nil
	}

	pipe := c.client.Pipeline()
	for _, k := range keys {
		pipe.Del(ctx, k)
	}
	_, err := pipe.Exec(ctx)
	return errors.Wrap(err, "redis clear")
}

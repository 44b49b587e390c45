package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aisystant/coursesync"
	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
)

const (
	redisDialTimeout = 5 * time.Second
	redisScanCount   = 100
)

// RedisCache keeps one namespace under the key prefix
// "coursesync:<namespace>:". Entries never expire.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NamespacePrefix returns the key prefix used for a namespace.
func NamespacePrefix(namespace string) string {
	if namespace == "" {
		namespace = DocumentsNamespace
	}
	return "coursesync:" + namespace + ":"
}

// DialRedis connects to url and checks the server answers.
func DialRedis(url, namespace string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, &coursesync.CacheError{Message: "parsing redis URL", Cause: err}
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, &coursesync.CacheError{Message: "connecting to redis", Path: opts.Addr, Cause: err}
	}

	return NewRedisCacheFromClient(client, namespace), nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client, namespace string) *RedisCache {
	return &RedisCache{client: client, prefix: NamespacePrefix(namespace)}
}

// Get treats connection failures as misses; the entry is then retranslated.
func (c *RedisCache) Get(key string) (string, bool) {
	val, err := c.client.Get(context.Background(), c.prefix+key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", false
	case err != nil:
		log.Warnf("redis get %s%s: %v", c.prefix, key, err)
		return "", false
	}
	return val, true
}

// Set stores value under the namespaced key without expiration.
func (c *RedisCache) Set(key, value string) error {
	if err := c.client.Set(context.Background(), c.prefix+key, value, 0).Err(); err != nil {
		return &coursesync.CacheError{Message: "writing entry", Path: c.prefix + key, Cause: err}
	}
	return nil
}

// Entries walks the namespace with SCAN and reads each page with one MGET.
func (c *RedisCache) Entries() (map[string]string, error) {
	ctx := context.Background()
	out := make(map[string]string)

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"*", redisScanCount).Result()
		if err != nil {
			return nil, &coursesync.CacheError{Message: "scanning", Path: c.prefix, Cause: err}
		}
		if len(keys) > 0 {
			vals, err := c.client.MGet(ctx, keys...).Result()
			if err != nil {
				return nil, &coursesync.CacheError{Message: "reading page", Path: c.prefix, Cause: err}
			}
			for i, v := range vals {
				// nil when the key expired between SCAN and MGET
				if s, ok := v.(string); ok {
					out[strings.TrimPrefix(keys[i], c.prefix)] = s
				}
			}
		}
		if next == 0 {
			return out, nil
		}
		cursor = next
	}
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error { return c.client.Close() }

var (
	_ Backend    = (*RedisCache)(nil)
	_ Enumerable = (*RedisCache)(nil)
)

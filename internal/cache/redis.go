package cache

import (
	"context"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"budgettracker/internal/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// opTimeout bounds every redis round trip so a slow cache never stalls a request.
const opTimeout = 500 * time.Millisecond

// Redis is a Cache backed by a redis server. Values are stored as JSON under
// "<prefix>:<key>".
type Redis[V any] struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedis creates a redis-backed cache namespaced by prefix.
func NewRedis[V any](client redis.UniversalClient, prefix string, ttl time.Duration) *Redis[V] {
	return &Redis[V]{client: client, prefix: prefix, ttl: ttl}
}

func (c *Redis[V]) key(k string) string {
	return c.prefix + ":" + k
}

// Get fetches and decodes key. Any redis or decode failure is a miss.
func (c *Redis[V]) Get(key string) (V, bool) {
	var zero V
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, false
	}
	if err != nil {
		logger.Get().Warnw("cache get failed", "key", c.key(key), "error", err)
		return zero, false
	}

	var v V
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.Get().Warnw("cache decode failed", "key", c.key(key), "error", err)
		return zero, false
	}
	return v, true
}

// Put encodes v and stores it with the cache TTL.
func (c *Redis[V]) Put(key string, v V) {
	raw, err := json.Marshal(v)
	if err != nil {
		logger.Get().Warnw("cache encode failed", "key", c.key(key), "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := c.client.Set(ctx, c.key(key), raw, c.ttl).Err(); err != nil {
		logger.Get().Warnw("cache put failed", "key", c.key(key), "error", err)
	}
}

// Evict deletes key.
func (c *Redis[V]) Evict(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		logger.Get().Warnw("cache evict failed", "key", c.key(key), "error", err)
	}
}

// Options configures the redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects to redis and pings it once.
func NewRedisClient(opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

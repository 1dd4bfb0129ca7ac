package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	goredis "github.com/redis/go-redis/v9"

	redisPkg "go-stock-dashboard/pkg/redis"
)

// redisStore backs the gateway with a shared Redis instance.
type redisStore struct {
	client *redisPkg.Client
}

// NewRedisStore creates a Store over the given Redis client.
func NewRedisStore(client *redisPkg.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == goredis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// memoryStore backs the gateway with an in-process cache. Used when Redis is
// not configured, and in tests.
type memoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates an in-process Store.
func NewMemoryStore() Store {
	return &memoryStore{cache: gocache.New(gocache.NoExpiration, 10*time.Minute)}
}

func (s *memoryStore) Get(_ context.Context, key string) (string, error) {
	val, ok := s.cache.Get(key)
	if !ok {
		return "", ErrNotFound
	}
	return val.(string), nil
}

func (s *memoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.cache.Set(key, value, ttl)
	return nil
}

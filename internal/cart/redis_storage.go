package cart

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisStorage scopes keys per owner so several shoppers can share one Redis.
type RedisStorage struct {
	client redisClient
	owner  string
	ttl    time.Duration
}

func NewRedisStorage(client *redis.Client, owner string, ttl time.Duration) *RedisStorage {
	return newRedisStorage(client, owner, ttl)
}

func newRedisStorage(client redisClient, owner string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{client: client, owner: owner, ttl: ttl}
}

func (r *RedisStorage) key(key string) string {
	if r.owner == "" {
		return key
	}
	return key + ":" + r.owner
}

func (r *RedisStorage) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *RedisStorage) Write(ctx context.Context, key string, data []byte) error {
	return r.client.Set(ctx, r.key(key), data, r.ttl).Err()
}

package cache

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/redis/go-redis/v9"
)

// Redis implements Cache on a Redis instance so dashboard responses are
// shared across replicas. Expiry is delegated to Redis via SET EX.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a Redis cache and verifies connectivity
func NewRedis(ctx context.Context, addr, password string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, goerr.Wrap(err, "failed to connect to redis", goerr.V("addr", addr))
	}

	return &Redis{client: client}, nil
}

// Get returns the live value for key
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, goerr.New("cache key is empty")
	}

	value, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to read cache entry", goerr.V("key", key))
	}

	return value, true, nil
}

// Set stores value under key for the given TTL
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return goerr.New("cache key is empty")
	}
	if ttl <= 0 {
		return goerr.New("cache TTL must be positive", goerr.V("ttl", ttl))
	}

	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return goerr.Wrap(err, "failed to write cache entry", goerr.V("key", key))
	}
	return nil
}

// Close releases the Redis connection
func (r *Redis) Close() error {
	return r.client.Close()
}

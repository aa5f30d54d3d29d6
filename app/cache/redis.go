package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "page:"

// Redis is a PageStore backed by a Redis server, for deployments where
// several instances should share one page cache. Backend errors are
// logged and treated as misses.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a Redis page store for the given address
func NewRedis(addr string) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// NewRedisWithClient wraps an existing client
func NewRedisWithClient(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Ping verifies the connection
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	body, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("page cache get failed, serving live: %v", err)
		return nil, false
	}
	return body, true
}

func (r *Redis) Set(ctx context.Context, key string, body []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := r.client.Set(ctx, redisKeyPrefix+key, body, ttl).Err(); err != nil {
		log.Printf("page cache set failed: %v", err)
	}
}

func (r *Redis) Clear(ctx context.Context) {
	iter := r.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("page cache clear failed: %v", err)
			return
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("page cache clear failed: %v", err)
	}
}

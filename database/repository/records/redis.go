package recordsRepo

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

type redisRecordStore struct {
	client *redis.Client
}

// NewRedisRecordStore returns a Store backed by Redis. Used for idempotency
// records, which carry a TTL and benefit from Redis-native expiry.
func NewRedisRecordStore(client *redis.Client) Store {
	return &redisRecordStore{client: client}
}

func (r *redisRecordStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (r *redisRecordStore) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *redisRecordStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

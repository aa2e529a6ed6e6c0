// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"tripforge/config"

	"github.com/go-redis/redis/v8"
)

// IdemCacheClient is the dedicated client for idempotency records.
var IdemCacheClient *redis.Client

// InitIdemCache initializes the Redis client for idempotency records
// (using DB from AppConfig).
func InitIdemCache() {
	IdemCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisIdemDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := IdemCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Idempotency): %v", err)
	}
}

// GetIdemCacheClient returns the Redis client for idempotency records.
func GetIdemCacheClient() *redis.Client {
	if IdemCacheClient == nil {
		InitIdemCache()
	}
	return IdemCacheClient
}

package utils

import (
	"context"
	"log"
	"time"

	"dineflow/config"

	"github.com/go-redis/redis/v8"
)

// HoldCacheClient is the Redis client backing short-lived table holds.
var HoldCacheClient *redis.Client

// InitHoldCache initializes the Redis client used for table holds.
func InitHoldCache() {
	HoldCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisHoldDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := HoldCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (table holds): %v", err)
	}
}

// GetHoldCacheClient returns the Redis client for table holds.
func GetHoldCacheClient() *redis.Client {
	if HoldCacheClient == nil {
		InitHoldCache()
	}
	return HoldCacheClient
}

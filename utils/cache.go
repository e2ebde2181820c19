package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"barberbook/config"
)

// DedupClient is the Redis client used to remember processed webhook
// event ids.
var DedupClient *redis.Client

// InitDedupCache initializes the Redis client for webhook deduplication.
func InitDedupCache() {
	DedupClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDedupDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := DedupClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Dedup): %v", err)
	}
}

// GetDedupClient returns the Redis client for webhook deduplication.
func GetDedupClient() *redis.Client {
	if DedupClient == nil {
		InitDedupCache()
	}
	return DedupClient
}

// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"shastho/config"

	"github.com/go-redis/redis/v8"
)

// LockClient is the Redis client backing the distributed booking locks.
var LockClient *redis.Client

// InitLockClient initializes the Redis client used for doctor+date booking locks.
func InitLockClient() {
	LockClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisLockDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := LockClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Locks): %v", err)
	}
}

// GetLockClient returns the Redis client for booking locks.
func GetLockClient() *redis.Client {
	if LockClient == nil {
		InitLockClient()
	}
	return LockClient
}

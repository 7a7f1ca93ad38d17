package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthStatus is the latest snapshot of the service's two external
// dependencies: the appointment store and the booking-lock Redis.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	LockRedis bool      `json:"lockRedis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

func setHealthStatus(h HealthStatus) {
	healthMu.Lock()
	currentHealth = h
	healthMu.Unlock()
}

type redisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

type mongoPinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

func checkHealth(ctx context.Context, lockClient redisPinger, mongoClient mongoPinger) HealthStatus {
	return HealthStatus{
		Mongo:     mongoClient.Ping(ctx, nil) == nil,
		LockRedis: lockClient.Ping(ctx).Err() == nil,
		CheckedAt: time.Now(),
	}
}

// StartHealthMonitor pings the stores once a minute and updates the in-memory
// snapshot served on the health endpoint.
func StartHealthMonitor(lockClient *redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()
		for range ticker.C {
			setHealthStatus(checkHealth(ctx, lockClient, mongoClient))
		}
	}()
}

package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// redisLocker is the multi-instance DoctorDayLocker: SET NX with a TTL so a
// crashed holder cannot wedge a doctor's day, and a token-checked release so
// an expired holder cannot free a lock someone else now owns.
type redisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// NewRedisLocker returns a Redis-backed DoctorDayLocker with the given lock TTL.
func NewRedisLocker(client *redis.Client, ttl time.Duration) DoctorDayLocker {
	return &redisLocker{client: client, ttl: ttl}
}

func (l *redisLocker) Acquire(ctx context.Context, doctorID, date string) (func(), error) {
	key := fmt.Sprintf("booking-lock:%s:%s", doctorID, date)
	token := uuid.New().String()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, serviceErr("acquire booking lock", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, serviceErr("acquire booking lock", ctx.Err())
		case <-time.After(25 * time.Millisecond):
		}
	}

	release := func() {
		// Best effort: the TTL reclaims the lock if the release is lost.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err()
	}
	return release, nil
}

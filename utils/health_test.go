package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type fakeMongoPinger struct{ err error }

func (f fakeMongoPinger) Ping(context.Context, *readpref.ReadPref) error { return f.err }

type fakeRedisPinger struct{ err error }

func (f fakeRedisPinger) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
	}
	return cmd
}

func TestCheckHealth(t *testing.T) {
	down := errors.New("connection refused")
	tests := []struct {
		name          string
		mongoErr      error
		redisErr      error
		wantMongo     bool
		wantLockRedis bool
	}{
		{"all up", nil, nil, true, true},
		{"mongo down", down, nil, false, true},
		{"redis down", nil, down, true, false},
		{"all down", down, down, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := checkHealth(context.Background(), fakeRedisPinger{err: tt.redisErr}, fakeMongoPinger{err: tt.mongoErr})
			assert.Equal(t, tt.wantMongo, h.Mongo)
			assert.Equal(t, tt.wantLockRedis, h.LockRedis)
			assert.False(t, h.CheckedAt.IsZero())
		})
	}
}

func TestHealthSnapshotRoundTrip(t *testing.T) {
	h := checkHealth(context.Background(), fakeRedisPinger{}, fakeMongoPinger{})
	setHealthStatus(h)
	assert.Equal(t, h, GetHealthStatus())
}

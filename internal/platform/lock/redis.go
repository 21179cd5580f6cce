package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock re-taken by another replica is never released by us.
var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// ConnectRedis opens a client and verifies it with PING.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("could not connect to Redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// Redis is a Locker shared by every server replica pointing at the same
// Redis and lock key. The TTL bounds how long a crashed holder blocks others.
type Redis struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

func NewRedis(rdb *redis.Client, key string, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, key: key, ttl: ttl}
}

func (l *Redis) TryAcquire(ctx context.Context) (string, bool, error) {
	token := uuid.NewString()
	// SET key value NX PX milliseconds
	ok, err := l.rdb.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("acquire lock %s: %w", l.key, err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (l *Redis) Release(ctx context.Context, token string) error {
	deleted, err := releaseScript.Run(ctx, l.rdb, []string{l.key}, token).Int64()
	if err != nil {
		return fmt.Errorf("release lock %s: %w", l.key, err)
	}
	if deleted == 0 {
		return fmt.Errorf("release lock %s: %w", l.key, ErrLockLost)
	}
	return nil
}

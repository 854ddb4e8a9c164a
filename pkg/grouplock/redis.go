package grouplock

import (
	"context"
	"time"

	"github.com/giftgroup/backend/pkg/xredis"
	"github.com/google/uuid"
)

const keyPrefix = "grouplock:"

type redisLocker struct {
	client xredis.Client
	ttl    time.Duration
}

// NewRedis returns a Locker shared by every instance using the same redis.
// The ttl bounds how long a crashed owner can keep the key.
func NewRedis(client xredis.Client, ttl time.Duration) Locker {
	return &redisLocker{client: client, ttl: ttl}
}

func (l *redisLocker) TryLock(ctx context.Context, key string) (Unlock, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, keyPrefix+key, token, l.ttl)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrLocked
	}

	return func(ctx context.Context) error {
		_, err := l.client.DelIfEqual(ctx, keyPrefix+key, token)
		return err
	}, nil
}

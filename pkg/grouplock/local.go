package grouplock

import (
	"context"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync"
)

type localLocker struct {
	owners *xsync.MapOf[string, string]
}

// NewLocal returns a Locker valid inside one process.
func NewLocal() Locker {
	return &localLocker{owners: xsync.NewMapOf[string]()}
}

func (l *localLocker) TryLock(ctx context.Context, key string) (Unlock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	token := uuid.NewString()
	if _, loaded := l.owners.LoadOrStore(key, token); loaded {
		return nil, ErrLocked
	}

	return func(context.Context) error {
		// Only the holder of token removes it, a newer owner is left alone.
		if owner, ok := l.owners.Load(key); ok && owner == token {
			l.owners.Delete(key)
		}

		return nil
	}, nil
}

// Package grouplock serializes mutations on one key, usually a group id.
package grouplock

import (
	"context"
	"errors"
)

var ErrLocked = errors.New("grouplock: held by another owner")

// Unlock releases a lock obtained by TryLock. Releasing a lock that expired
// or was taken over is not an error.
type Unlock func(ctx context.Context) error

type Locker interface {
	// TryLock returns ErrLocked instead of waiting when the key is held.
	TryLock(ctx context.Context, key string) (Unlock, error)
}

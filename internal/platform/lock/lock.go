// Package lock guards the refresh pipeline against overlapping runs.
package lock

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrLockLost is returned by Release when the lock expired or changed hands
// before the holder released it.
var ErrLockLost = errors.New("lock no longer held")

// Locker is a non-blocking mutual exclusion primitive. TryAcquire returns
// ok=false when another holder owns the lock. The returned token must be
// passed to Release.
type Locker interface {
	TryAcquire(ctx context.Context) (token string, ok bool, err error)
	Release(ctx context.Context, token string) error
}

// Local is an in-process Locker, used when no Redis is configured.
type Local struct {
	mu    sync.Mutex
	owner string
}

func NewLocal() *Local {
	return &Local{}
}

func (l *Local) TryAcquire(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.owner != "" {
		return "", false, nil
	}
	l.owner = uuid.NewString()
	return l.owner, true, nil
}

// Release frees the lock if token still owns it; stale tokens are ignored.
func (l *Local) Release(_ context.Context, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.owner == token {
		l.owner = ""
	}
	return nil
}

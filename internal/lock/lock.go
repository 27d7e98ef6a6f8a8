// Package lock serializes work per tenant, across goroutines or across processes.
package lock

import (
	"context"
	"errors"
)

// ErrNotAcquired is returned when the lock could not be taken before ctx ended.
var ErrNotAcquired = errors.New("lock not acquired")

// Locker grants exclusive access to a key. Lock blocks until the key is free or ctx
// is done. The returned unlock func releases the key; calling it more than once is safe.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

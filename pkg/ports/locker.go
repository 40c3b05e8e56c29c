package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a build lock.
type UnlockFunc func(ctx context.Context) error

// BuildLocker enforces single-writer access to an avatar's generated graph.
type BuildLocker interface {
	// Lock acquires the lock for key (the avatar name). Implementations either
	// fail fast with domain.ErrBuildInProgress or block until the context ends.
	// Returns an UnlockFunc that MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}

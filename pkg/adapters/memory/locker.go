package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/graft/pkg/domain"
	"github.com/aretw0/graft/pkg/ports"
)

// Locker implements ports.BuildLocker in process. A held key is rejected
// immediately with domain.ErrBuildInProgress; TTLs are ignored.
type Locker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewLocker creates a new in-memory locker.
func NewLocker() *Locker {
	return &Locker{held: make(map[string]struct{})}
}

// Lock acquires key or fails fast.
func (l *Locker) Lock(ctx context.Context, key string, _ time.Duration) (ports.UnlockFunc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.held[key]; busy {
		return nil, domain.ErrBuildInProgress
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
		return nil
	}, nil
}

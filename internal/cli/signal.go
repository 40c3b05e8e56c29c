package cli

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// SignalContext is cancelled on SIGINT or SIGTERM and remembers which signal
// stopped it, so watch can tell an interrupt from a parent cancellation.
type SignalContext struct {
	context.Context
	Cancel func()

	mu     sync.Mutex
	sigVal os.Signal
}

// NewSignalContext works like signal.NotifyContext but keeps the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{Context: ctx, Cancel: cancel}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
			cancel()
		case <-ctx.Done():
		}
	}()
	return sc
}

// Signal returns the signal that cancelled the context, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

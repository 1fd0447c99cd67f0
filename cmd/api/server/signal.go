package server

import (
	"context"
	"os/signal"
	"syscall"
)

// WithSignal returns a context canceled on SIGINT or SIGTERM, or when ctx is.
// The returned stop func releases the signal registration.
func WithSignal(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

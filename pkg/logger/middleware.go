package logger

import (
	"context"

	"github.com/google/uuid"
)

// NewRequestID returns a fresh random request identifier.
func NewRequestID() string {
	return uuid.New().String()
}

// ContextWithRequestID stores the request ID in ctx, generating one when id is empty.
func ContextWithRequestID(ctx context.Context, id string) (context.Context, string) {
	if id == "" {
		id = NewRequestID()
	}
	return context.WithValue(ctx, RequestIDKey, id), id
}

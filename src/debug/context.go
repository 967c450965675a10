// FILE: nsdebug/src/debug/context.go
package debug

import (
	"context"

	"nsdebug/src/internal/core"

	"github.com/google/uuid"
)

// WithRequestID returns a context whose events carry id as their request id
func WithRequestID(ctx context.Context, id string) context.Context {
	return core.WithRequestID(ctx, id)
}

// NewRequestContext returns a context carrying a fresh random request id
func NewRequestContext(ctx context.Context) (context.Context, string) {
	id := uuid.New().String()
	return core.WithRequestID(ctx, id), id
}

// RequestID returns the request id carried by ctx, if any
func RequestID(ctx context.Context) string {
	id, _ := core.RequestIDFrom(ctx)
	return id
}

// FILE: nsdebug/src/internal/sink/sink.go
package sink

import (
	"context"
	"time"

	"nsdebug/src/internal/value"
)

// Sink represents a persistent destination for accepted debug events
type Sink interface {
	// Write offers an event; false means the mode policy rejected it
	Write(ctx context.Context, namespace, message string, data *value.Value) bool

	// Flush persists buffered entries
	Flush() error

	// Start begins periodic flushing
	Start(ctx context.Context) error

	// Stop flushes and releases the target
	Stop() error

	// SetCorrelationID sets the request id used when ctx carries none
	SetCorrelationID(id string)

	// ClearCorrelationID removes the default request id
	ClearCorrelationID()

	// GetStats returns sink statistics
	GetStats() SinkStats
}

// SinkStats contains statistics about a sink
type SinkStats struct {
	Type           string
	TotalProcessed uint64
	StartTime      time.Time
	LastProcessed  time.Time
	LastFlush      time.Time
	Details        map[string]any
}

// FILE: nsdebug/src/internal/core/entry.go
package core

import (
	"time"

	"nsdebug/src/internal/value"
)

// LogEntry is a single persisted debug event
type LogEntry struct {
	Timestamp string       `json:"timestamp"`
	Namespace string       `json:"namespace"`
	Message   string       `json:"message"`
	Data      *value.Value `json:"data,omitempty"`
	Metadata  *Metadata    `json:"metadata,omitempty"`
}

// Metadata carries correlation information for an entry
type Metadata struct {
	RequestID string `json:"requestId,omitempty"`
}

// NewLogEntry builds an entry stamped with the given time. An empty
// requestID leaves metadata out.
func NewLogEntry(at time.Time, namespace, message string, data *value.Value, requestID string) LogEntry {
	entry := LogEntry{
		Timestamp: FormatTimestamp(at),
		Namespace: namespace,
		Message:   message,
	}
	if data != nil {
		d := *data
		entry.Data = &d
	}
	if requestID != "" {
		entry.Metadata = &Metadata{RequestID: requestID}
	}
	return entry
}

// RequestID returns the correlation id, or "" when none was recorded
func (e LogEntry) RequestID() string {
	if e.Metadata == nil {
		return ""
	}
	return e.Metadata.RequestID
}

// Time parses the entry timestamp
func (e LogEntry) Time() (time.Time, error) {
	return ParseTimestamp(e.Timestamp)
}

// FormatTimestamp renders t the way entries and session markers store it
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts the stored layout as well as any RFC 3339 time
// and a bare date.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}

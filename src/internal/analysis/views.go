// FILE: nsdebug/src/internal/analysis/views.go
package analysis

import (
	"time"

	"nsdebug/src/internal/core"
)

// FilterOptions selects entries; zero fields do not filter
type FilterOptions struct {
	Namespace string
	After     *time.Time
	Before    *time.Time
	Limit     int
}

// Filter returns the first Limit entries matching every given predicate.
// After and Before are exclusive; an entry whose timestamp cannot be parsed
// fails any active time predicate.
func Filter(entries []core.LogEntry, opts FilterOptions) []core.LogEntry {
	limit := opts.Limit
	if limit <= 0 {
		limit = core.DefaultFilterLimit
	}

	out := make([]core.LogEntry, 0, min(limit, len(entries)))
	for _, e := range entries {
		if len(out) >= limit {
			break
		}
		if opts.Namespace != "" && e.Namespace != opts.Namespace {
			continue
		}
		if opts.After != nil || opts.Before != nil {
			ts, err := e.Time()
			if err != nil {
				continue
			}
			if opts.After != nil && !ts.After(*opts.After) {
				continue
			}
			if opts.Before != nil && !ts.Before(*opts.Before) {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// Tail returns the last n entries in file order; n <= 0 means the default
func Tail(entries []core.LogEntry, n int) []core.LogEntry {
	if n <= 0 {
		n = core.DefaultTailLines
	}
	if n > len(entries) {
		n = len(entries)
	}
	return append([]core.LogEntry(nil), entries[len(entries)-n:]...)
}

// Errors returns every error entry in file order
func Errors(entries []core.LogEntry) []core.LogEntry {
	out := make([]core.LogEntry, 0)
	for _, e := range entries {
		if IsError(e) {
			out = append(out, e)
		}
	}
	return out
}

// FILE: nsdebug/src/internal/analysis/predicates.go
package analysis

import (
	"strings"

	"nsdebug/src/internal/core"
)

var perfKeys = []string{"duration", "elapsed", "timing"}

// IsError reports entries whose data carries a non-empty error or whose
// message mentions "error" or "failed" in any case
func IsError(e core.LogEntry) bool {
	if e.Data != nil {
		if v, ok := e.Data.Get("error"); ok && v.Truthy() {
			return true
		}
	}

	msg := strings.ToLower(e.Message)
	return strings.Contains(msg, "error") || strings.Contains(msg, "failed")
}

// IsPerformance reports entries whose data holds a duration, elapsed or timing key
func IsPerformance(e core.LogEntry) bool {
	if e.Data == nil {
		return false
	}
	for _, key := range perfKeys {
		if e.Data.Has(key) {
			return true
		}
	}
	return false
}

// numeric returns data[key] when it is a finite number
func numeric(e core.LogEntry, key string) (float64, bool) {
	if e.Data == nil {
		return 0, false
	}
	v, ok := e.Data.Get(key)
	if !ok {
		return 0, false
	}
	return v.Float()
}

// timingValue returns the first numeric of duration, elapsed, timing
func timingValue(e core.LogEntry) (float64, bool) {
	for _, key := range perfKeys {
		if f, ok := numeric(e, key); ok {
			return f, true
		}
	}
	return 0, false
}

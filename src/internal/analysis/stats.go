// FILE: nsdebug/src/internal/analysis/stats.go
package analysis

import (
	"nsdebug/src/internal/core"
)

const (
	TopNamespaces    = 10
	TopPatterns      = 5
	PatternMsgLength = 50
)

// Pattern is a recurring namespace and message prefix
type Pattern struct {
	Namespace string
	Message   string
	Count     int
}

// Statistics holds the aggregate counts rendered by the stats command
type Statistics struct {
	Total          int
	TopNamespaces  []NamespaceCount
	UniqueRequests int
	TopPatterns    []Pattern
}

type patternKey struct {
	namespace string
	prefix    string
}

// Stats counts namespaces, request ids and message patterns. Equal counts
// rank in the order first seen.
func Stats(entries []core.LogEntry) Statistics {
	st := Statistics{Total: len(entries)}

	namespaces := newCounter[string]()
	patterns := newCounter[patternKey]()
	requests := make(map[string]struct{})

	for _, e := range entries {
		namespaces.add(e.Namespace)
		patterns.add(patternKey{namespace: e.Namespace, prefix: prefix(e.Message, PatternMsgLength)})
		if id := e.RequestID(); id != "" {
			requests[id] = struct{}{}
		}
	}

	for _, r := range namespaces.top(TopNamespaces) {
		st.TopNamespaces = append(st.TopNamespaces, NamespaceCount{
			Namespace: r.key,
			Count:     r.count,
			Percent:   percent(r.count, st.Total),
		})
	}

	for _, r := range patterns.top(TopPatterns) {
		st.TopPatterns = append(st.TopPatterns, Pattern{
			Namespace: r.key.namespace,
			Message:   r.key.prefix,
			Count:     r.count,
		})
	}

	st.UniqueRequests = len(requests)
	return st
}

// prefix returns the first n runes of s
func prefix(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

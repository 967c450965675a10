// FILE: nsdebug/src/internal/analysis/summary.go
package analysis

import (
	"sort"

	"nsdebug/src/internal/core"
)

// Number of error entries quoted by a summary
const ErrorSampleSize = 3

// NamespaceCount is the number of entries in one namespace
type NamespaceCount struct {
	Namespace string
	Count     int
	Percent   float64
}

// TimeRange spans the first and last entry of a log
type TimeRange struct {
	First          string
	Last           string
	ElapsedSeconds float64
}

// Summary is the overview rendered by the analyze command
type Summary struct {
	Total            int
	Namespaces       []NamespaceCount
	ErrorCount       int
	ErrorSamples     []core.LogEntry
	MoreErrors       int
	PerformanceCount int
	// Over numeric duration values only; nil when there are none
	Durations *DurationStats
	// Nil for an empty log
	TimeRange *TimeRange
}

// Summarize builds the overview of a log
func Summarize(entries []core.LogEntry) Summary {
	s := Summary{Total: len(entries)}

	namespaces := newCounter[string]()
	var durations durationAcc

	for _, e := range entries {
		namespaces.add(e.Namespace)

		if IsError(e) {
			s.ErrorCount++
			if len(s.ErrorSamples) < ErrorSampleSize {
				s.ErrorSamples = append(s.ErrorSamples, e)
			}
		}

		if IsPerformance(e) {
			s.PerformanceCount++
			if d, ok := numeric(e, "duration"); ok {
				durations.add(d)
			}
		}
	}

	ranked := namespaces.top(0)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].key < ranked[j].key
	})
	s.Namespaces = make([]NamespaceCount, len(ranked))
	for i, r := range ranked {
		s.Namespaces[i] = NamespaceCount{Namespace: r.key, Count: r.count, Percent: percent(r.count, s.Total)}
	}

	s.MoreErrors = s.ErrorCount - len(s.ErrorSamples)
	s.Durations = durations.stats()

	if len(entries) > 0 {
		first, last := entries[0], entries[len(entries)-1]
		tr := &TimeRange{First: first.Timestamp, Last: last.Timestamp}
		start, err1 := first.Time()
		end, err2 := last.Time()
		if err1 == nil && err2 == nil {
			tr.ElapsedSeconds = end.Sub(start).Seconds()
		}
		s.TimeRange = tr
	}

	return s
}

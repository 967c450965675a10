// FILE: nsdebug/src/internal/analysis/perf.go
package analysis

import (
	"sort"

	"nsdebug/src/internal/core"
)

// Number of entries listed as slowest
const SlowestCount = 5

// PerfGroup aggregates the performance entries sharing one message
type PerfGroup struct {
	Message string
	// All matching entries, timed or not
	Count int
	// False when no entry carried a numeric timing; Stats is then nil
	Timed bool
	Stats *DurationStats
}

// SlowEntry is an entry ranked by its numeric duration
type SlowEntry struct {
	Entry    core.LogEntry
	Duration float64
}

// PerfReport is the output of the perf command
type PerfReport struct {
	Total   int
	Groups  []PerfGroup
	Slowest []SlowEntry
}

// Perf groups performance entries by message, in first-seen order, and
// ranks the entries with the highest duration
func Perf(entries []core.LogEntry) PerfReport {
	var report PerfReport

	index := make(map[string]int)
	accs := make([]*durationAcc, 0)
	var slow []SlowEntry

	for _, e := range entries {
		if !IsPerformance(e) {
			continue
		}
		report.Total++

		i, ok := index[e.Message]
		if !ok {
			i = len(report.Groups)
			index[e.Message] = i
			report.Groups = append(report.Groups, PerfGroup{Message: e.Message})
			accs = append(accs, &durationAcc{})
		}
		report.Groups[i].Count++

		if f, ok := timingValue(e); ok {
			accs[i].add(f)
		}
		if d, ok := numeric(e, "duration"); ok {
			slow = append(slow, SlowEntry{Entry: e, Duration: d})
		}
	}

	for i := range report.Groups {
		report.Groups[i].Stats = accs[i].stats()
		report.Groups[i].Timed = report.Groups[i].Stats != nil
	}

	sort.SliceStable(slow, func(i, j int) bool { return slow[i].Duration > slow[j].Duration })
	if len(slow) > SlowestCount {
		slow = slow[:SlowestCount]
	}
	report.Slowest = slow

	return report
}

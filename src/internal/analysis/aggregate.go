// FILE: nsdebug/src/internal/analysis/aggregate.go
package analysis

import (
	"math"
	"sort"
)

// DurationStats aggregates numeric timing samples
type DurationStats struct {
	Count int
	Avg   float64
	Min   float64
	Max   float64
}

type durationAcc struct {
	count int
	sum   float64
	min   float64
	max   float64
}

func (a *durationAcc) add(f float64) {
	if a.count == 0 {
		a.min, a.max = f, f
	} else {
		a.min = math.Min(a.min, f)
		a.max = math.Max(a.max, f)
	}
	a.sum += f
	a.count++
}

// stats returns nil when no sample was added
func (a *durationAcc) stats() *DurationStats {
	if a.count == 0 {
		return nil
	}
	return &DurationStats{
		Count: a.count,
		Avg:   a.sum / float64(a.count),
		Min:   a.min,
		Max:   a.max,
	}
}

// counter counts keys and remembers the order each was first seen
type counter[K comparable] struct {
	order  []K
	counts map[K]int
}

func newCounter[K comparable]() *counter[K] {
	return &counter[K]{counts: make(map[K]int)}
}

func (c *counter[K]) add(k K) {
	if _, seen := c.counts[k]; !seen {
		c.order = append(c.order, k)
	}
	c.counts[k]++
}

type ranked[K comparable] struct {
	key   K
	count int
}

// top returns up to n keys by descending count. Equal counts keep first-seen
// order; n <= 0 returns all keys.
func (c *counter[K]) top(n int) []ranked[K] {
	out := make([]ranked[K], len(c.order))
	for i, k := range c.order {
		out[i] = ranked[K]{key: k, count: c.counts[k]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].count > out[j].count })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}

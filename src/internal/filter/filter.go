// FILE: nsdebug/src/internal/filter/filter.go
package filter

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"

	"nsdebug/src/internal/config"

	"github.com/lixenwraith/log"
)

// Filter applies wildcard namespace patterns
type Filter struct {
	config   config.FilterConfig
	patterns []*regexp.Regexp
	mu       sync.RWMutex
	logger   *log.Logger

	// Statistics
	totalProcessed atomic.Uint64
	totalMatched   atomic.Uint64
	totalDropped   atomic.Uint64
}

// NewFilter creates a new filter from configuration
func NewFilter(cfg config.FilterConfig, logger *log.Logger) (*Filter, error) {
	if cfg.Type == "" {
		cfg.Type = config.FilterTypeInclude
	}

	patterns, err := compilePatterns(cfg.Patterns)
	if err != nil {
		return nil, err
	}

	f := &Filter{
		config:   cfg,
		patterns: patterns,
		logger:   logger,
	}

	logger.Debug("msg", "Filter created",
		"component", "filter",
		"type", cfg.Type,
		"pattern_count", len(cfg.Patterns))

	return f, nil
}

// CompileWildcard turns a namespace pattern into an anchored regex, with
// "*" matching any run of characters
func CompileWildcard(pattern string) (*regexp.Regexp, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, fmt.Errorf("empty pattern")
	}

	parts := strings.Split(pattern, "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	return regexp.Compile("^" + strings.Join(parts, ".*") + "$")
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for i, pattern := range patterns {
		re, err := CompileWildcard(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid namespace pattern[%d] '%s': %w", i, pattern, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// Apply checks if a namespace should be passed through
func (f *Filter) Apply(namespace string) bool {
	f.totalProcessed.Add(1)

	f.mu.RLock()
	patterns := f.patterns
	filterType := f.config.Type
	f.mu.RUnlock()

	// No patterns means pass everything
	if len(patterns) == 0 {
		return true
	}

	matched := false
	for _, re := range patterns {
		if re.MatchString(namespace) {
			matched = true
			break
		}
	}
	if matched {
		f.totalMatched.Add(1)
	}

	shouldPass := false
	switch filterType {
	case config.FilterTypeInclude:
		shouldPass = matched
	case config.FilterTypeExclude:
		shouldPass = !matched
	}

	if !shouldPass {
		f.totalDropped.Add(1)
	}

	return shouldPass
}

// Type returns the filter type
func (f *Filter) Type() string {
	return f.config.Type
}

// PatternCount returns the number of active patterns
func (f *Filter) PatternCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.patterns)
}

// Patterns returns the active pattern sources
func (f *Filter) Patterns() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.config.Patterns...)
}

// GetStats returns filter statistics
func (f *Filter) GetStats() map[string]any {
	return map[string]any{
		"type":            f.config.Type,
		"pattern_count":   f.PatternCount(),
		"total_processed": f.totalProcessed.Load(),
		"total_matched":   f.totalMatched.Load(),
		"total_dropped":   f.totalDropped.Load(),
	}
}

// UpdatePatterns allows dynamic pattern updates
func (f *Filter) UpdatePatterns(patterns []string) error {
	compiled, err := compilePatterns(patterns)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.patterns = compiled
	f.config.Patterns = append([]string(nil), patterns...)
	f.mu.Unlock()

	f.logger.Info("msg", "Filter patterns updated",
		"component", "filter",
		"type", f.config.Type,
		"pattern_count", len(patterns))
	return nil
}

// FILE: nsdebug/src/debug/debug.go

// Package debug is a namespace-scoped debug logger. Events pass a namespace
// gate, are shaped by the configured output mode and appended to a JSON
// Lines file in batches.
package debug

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"nsdebug/src/internal/config"
	"nsdebug/src/internal/filter"
	"nsdebug/src/internal/mode"
	"nsdebug/src/internal/sink"
	"nsdebug/src/internal/value"

	"github.com/lixenwraith/log"
)

// Logger gates events by namespace and hands enabled ones to the file sink
type Logger struct {
	logger *log.Logger
	sink   sink.Sink // nil when file output is disabled
	cancel context.CancelFunc

	mu      sync.RWMutex
	all     bool
	include []string
	exclude []string
	chain   *filter.Chain

	closeOnce sync.Once
	closeErr  error
}

// Stats reports the gate and sink state
type Stats struct {
	All     bool
	Include []string
	Exclude []string
	Gate    map[string]any
	Sink    *sink.SinkStats
}

// New builds a Logger from cfg. File output starts immediately when enabled
// and runs until Close or until ctx is cancelled. A nil logger discards
// nsdebug's own diagnostics.
func New(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Logger, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		// Unstarted, so records go nowhere
		logger = log.NewLogger()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &Logger{logger: logger}

	filters := config.ParseNamespaces(cfg.Namespaces.Enabled)
	l.all = cfg.Namespaces.All
	l.include = dedupe(filters[0].Patterns)
	l.exclude = dedupe(filters[1].Patterns)
	if err := l.rebuildLocked(); err != nil {
		return nil, err
	}

	if cfg.Output.Enabled {
		policy, err := mode.New(cfg.Output.Mode)
		if err != nil {
			return nil, err
		}

		output := cfg.Output
		fs := sink.NewFileSink(&output, policy, logger)

		sinkCtx, cancel := context.WithCancel(ctx)
		if err := fs.Start(sinkCtx); err != nil {
			cancel()
			return nil, fmt.Errorf("failed to start file sink: %w", err)
		}
		l.sink = fs
		l.cancel = cancel
	}

	logger.Debug("msg", "Debug logger created",
		"component", "debug",
		"output", cfg.Output.Enabled,
		"mode", cfg.Output.Mode,
		"namespaces", cfg.Namespaces.Enabled,
		"all", cfg.Namespaces.All)

	return l, nil
}

// Log records an event when namespace is enabled. The first argument is the
// message; a second argument becomes the data; further arguments make the
// data an array of everything after the message.
func (l *Logger) Log(ctx context.Context, namespace string, args ...any) {
	if l.sink == nil || !l.Enabled(namespace) {
		return
	}

	message, data := splitArgs(args)
	l.sink.Write(ctx, namespace, message, data)
}

func splitArgs(args []any) (string, *value.Value) {
	if len(args) == 0 {
		return "", nil
	}

	var message string
	if s, ok := args[0].(string); ok {
		message = s
	} else {
		message = fmt.Sprint(args[0])
	}

	switch len(args) {
	case 1:
		return message, nil
	case 2:
		if args[1] == nil {
			return message, nil
		}
		v := value.FromAny(args[1])
		return message, &v
	}

	items := make([]value.Value, len(args)-1)
	for i, arg := range args[1:] {
		items[i] = value.FromAny(arg)
	}
	v := value.Array(items...)
	return message, &v
}

// Time starts a timer; calling the returned func logs message in namespace
// with the elapsed milliseconds as duration
func (l *Logger) Time(ctx context.Context, namespace, message string) func() {
	start := time.Now()
	return func() {
		elapsed := float64(time.Since(start).Microseconds()) / 1000
		l.Log(ctx, namespace, message, value.Object(
			value.Member{Key: "duration", Value: value.Number(elapsed)},
		))
	}
}

// Enabled reports whether events in namespace pass the gate
func (l *Logger) Enabled(namespace string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.chain.HasIncludes() && l.chain.Apply(namespace)
}

// Enable adds namespace patterns. The list is comma separated; "*" wildcards
// are allowed and a "-" prefix disables: "api:*,-api:health".
func (l *Logger) Enable(namespaces string) (err error) {
	filters := config.ParseNamespaces(namespaces)

	l.mu.Lock()
	defer l.mu.Unlock()
	defer l.restoreOnError(slices.Clone(l.include), slices.Clone(l.exclude), &err)

	for _, p := range filters[0].Patterns {
		l.include = appendUnique(l.include, p)
		l.exclude = remove(l.exclude, p)
	}
	for _, p := range filters[1].Patterns {
		l.exclude = appendUnique(l.exclude, p)
		l.include = remove(l.include, p)
	}
	return l.rebuildLocked()
}

// Disable turns off the comma separated namespace patterns
func (l *Logger) Disable(namespaces string) (err error) {
	filters := config.ParseNamespaces(namespaces)

	l.mu.Lock()
	defer l.mu.Unlock()
	defer l.restoreOnError(slices.Clone(l.include), slices.Clone(l.exclude), &err)

	for _, fc := range filters {
		for _, p := range fc.Patterns {
			l.include = remove(l.include, p)
			l.exclude = appendUnique(l.exclude, p)
		}
	}
	return l.rebuildLocked()
}

// EnableAll enables every namespace and clears exclusions
func (l *Logger) EnableAll() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.all = true
	l.exclude = nil
	// Patterns are known to compile
	_ = l.rebuildLocked()
}

// DisableAll disables every namespace and forgets all patterns
func (l *Logger) DisableAll() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.all = false
	l.include = nil
	l.exclude = nil
	_ = l.rebuildLocked()
}

// restoreOnError puts the pattern lists back when a rebuild failed, so the
// lists always describe the active chain
func (l *Logger) restoreOnError(include, exclude []string, err *error) {
	if *err != nil {
		l.include, l.exclude = include, exclude
	}
}

// rebuildLocked requires l.mu
func (l *Logger) rebuildLocked() error {
	include := l.include
	if l.all {
		include = []string{"*"}
	}

	chain, err := filter.NewChain([]config.FilterConfig{
		{Type: config.FilterTypeInclude, Patterns: include},
		{Type: config.FilterTypeExclude, Patterns: l.exclude},
	}, l.logger)
	if err != nil {
		return fmt.Errorf("invalid namespace pattern: %w", err)
	}

	l.chain = chain
	return nil
}

// SetRequestID sets the request id attached to events whose context
// carries none
func (l *Logger) SetRequestID(id string) {
	if l.sink != nil {
		l.sink.SetCorrelationID(id)
	}
}

// ClearRequestID removes the default request id
func (l *Logger) ClearRequestID() {
	if l.sink != nil {
		l.sink.ClearCorrelationID()
	}
}

// Flush persists buffered events
func (l *Logger) Flush() error {
	if l.sink == nil {
		return nil
	}
	return l.sink.Flush()
}

// Close flushes buffered events and releases the file. Safe to call more
// than once.
func (l *Logger) Close() error {
	l.closeOnce.Do(func() {
		if l.sink == nil {
			return
		}
		l.closeErr = l.sink.Stop()
		l.cancel()
	})
	return l.closeErr
}

// Stats returns a snapshot of the gate and sink state
func (l *Logger) Stats() Stats {
	l.mu.RLock()
	st := Stats{
		All:     l.all,
		Include: slices.Clone(l.include),
		Exclude: slices.Clone(l.exclude),
		Gate:    l.chain.GetStats(),
	}
	l.mu.RUnlock()

	if l.sink != nil {
		ss := l.sink.GetStats()
		st.Sink = &ss
	}
	return st
}

func dedupe(patterns []string) []string {
	var out []string
	for _, p := range patterns {
		out = appendUnique(out, p)
	}
	return out
}

func appendUnique(list []string, p string) []string {
	if slices.Contains(list, p) {
		return list
	}
	return append(list, p)
}

func remove(list []string, p string) []string {
	return slices.DeleteFunc(list, func(s string) bool { return s == p })
}

// join renders a namespace below parent
func join(parent, child string) string {
	if parent == "" {
		return child
	}
	return strings.TrimSuffix(parent, ":") + ":" + child
}

// FILE: nsdebug/src/debug/namespace.go
package debug

import (
	"context"
)

// Namespace is a Logger bound to one namespace
type Namespace struct {
	name   string
	logger *Logger
}

// Namespace returns a handle logging under name
func (l *Logger) Namespace(name string) *Namespace {
	return &Namespace{name: name, logger: l}
}

// Name returns the namespace
func (n *Namespace) Name() string {
	return n.name
}

// Extend returns a child namespace, "api" extended by "auth" is "api:auth"
func (n *Namespace) Extend(child string) *Namespace {
	return &Namespace{name: join(n.name, child), logger: n.logger}
}

// Log records an event in this namespace
func (n *Namespace) Log(ctx context.Context, args ...any) {
	n.logger.Log(ctx, n.name, args...)
}

// Enabled reports whether the namespace passes the gate
func (n *Namespace) Enabled() bool {
	return n.logger.Enabled(n.name)
}

// Time starts a timer logged in this namespace when the returned func runs
func (n *Namespace) Time(ctx context.Context, message string) func() {
	return n.logger.Time(ctx, n.name, message)
}

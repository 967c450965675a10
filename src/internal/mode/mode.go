// FILE: nsdebug/src/internal/mode/mode.go
package mode

import (
	"errors"
	"fmt"

	"nsdebug/src/internal/value"
)

const (
	NameMinimal  = "minimal"
	NameDetailed = "detailed"
	NameFull     = "full"
)

var ErrUnknownMode = errors.New("unknown output mode")

// Policy decides which events reach the file and how their payload is shaped
type Policy interface {
	// Name returns the mode name
	Name() string

	// Accept reports whether an event is persisted at all
	Accept(namespace string, data *value.Value) bool

	// Shape transforms an accepted payload; false means the entry is
	// written without a data field
	Shape(data value.Value) (value.Value, bool)
}

// New creates a Policy for the named mode. An empty name selects minimal.
func New(name string) (Policy, error) {
	switch name {
	case NameMinimal, "":
		return NewMinimal(), nil
	case NameDetailed:
		return NewDetailed(), nil
	case NameFull:
		return NewFull(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, name)
	}
}

// Names lists the valid mode names
func Names() []string {
	return []string{NameMinimal, NameDetailed, NameFull}
}

// FILE: nsdebug/src/internal/format/format.go
package format

import (
	"fmt"

	"nsdebug/src/internal/config"
	"nsdebug/src/internal/core"

	"github.com/lixenwraith/log"
)

// Formatter defines the interface for transforming a LogEntry into a byte slice.
type Formatter interface {
	// Format takes a LogEntry and returns the formatted entry, newline terminated.
	Format(entry core.LogEntry) ([]byte, error)

	// Name returns the formatter type name
	Name() string
}

// New creates a new Formatter based on the provided configuration.
func New(cfg *config.FormatConfig, logger *log.Logger) (Formatter, error) {
	if cfg == nil {
		cfg = config.DefaultFormatConfig()
	}

	switch cfg.Type {
	case "json":
		return NewJSONFormatter(cfg.JSONFormatOptions, logger)
	case "txt", "":
		return NewTextFormatter(cfg.TextFormatOptions, logger)
	case "raw":
		return NewRawFormatter(logger)
	default:
		return nil, fmt.Errorf("unknown formatter type: %s", cfg.Type)
	}
}

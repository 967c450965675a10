// FILE: nsdebug/src/internal/format/json.go
package format

import (
	"bytes"
	"encoding/json"
	"fmt"

	"nsdebug/src/internal/config"
	"nsdebug/src/internal/core"

	"github.com/lixenwraith/log"
)

// JSONFormatter produces the JSON Lines representation of entries.
type JSONFormatter struct {
	config *config.JSONFormatterOptions
	logger *log.Logger
}

// NewJSONFormatter creates a new JSON formatter from configuration options.
func NewJSONFormatter(opts *config.JSONFormatterOptions, logger *log.Logger) (*JSONFormatter, error) {
	if opts == nil {
		opts = &config.JSONFormatterOptions{}
	}

	f := &JSONFormatter{
		config: opts,
		logger: logger,
	}

	return f, nil
}

// Format transforms a single LogEntry into one JSON line.
func (f *JSONFormatter) Format(entry core.LogEntry) ([]byte, error) {
	var result []byte
	var err error
	if f.config.Pretty {
		result, err = json.MarshalIndent(entry, "", "  ")
	} else {
		result, err = json.Marshal(entry)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return append(result, '\n'), nil
}

// Name returns the formatter's type name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// FormatBatch concatenates the lines of all entries, in order. Entries that
// fail to encode are skipped and counted.
func (f *JSONFormatter) FormatBatch(entries []core.LogEntry) ([]byte, int, error) {
	var buf bytes.Buffer
	skipped := 0

	for _, entry := range entries {
		formatted, err := f.Format(entry)
		if err != nil {
			f.logger.Warn("msg", "Failed to format entry in batch",
				"component", "json_formatter",
				"namespace", entry.Namespace,
				"error", err)
			skipped++
			continue
		}
		buf.Write(formatted)
	}

	if skipped == len(entries) && skipped > 0 {
		return nil, skipped, fmt.Errorf("all %d entries failed to format", skipped)
	}

	return buf.Bytes(), skipped, nil
}

// FILE: nsdebug/src/internal/format/text.go
package format

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"nsdebug/src/internal/config"
	"nsdebug/src/internal/core"

	"github.com/lixenwraith/log"
)

// Produces human-readable entry lines using templates
type TextFormatter struct {
	config   *config.TextFormatterOptions
	template *template.Template
	logger   *log.Logger
}

// Creates a new text formatter
func NewTextFormatter(opts *config.TextFormatterOptions, logger *log.Logger) (*TextFormatter, error) {
	defaults := config.DefaultFormatConfig().TextFormatOptions
	if opts == nil {
		opts = defaults
	}
	o := *opts
	opts = &o
	if opts.Template == "" {
		opts.Template = defaults.Template
	}
	if opts.TimestampFormat == "" {
		opts.TimestampFormat = defaults.TimestampFormat
	}

	f := &TextFormatter{
		config: opts,
		logger: logger,
	}

	// Create template with helper functions
	funcMap := template.FuncMap{
		"FmtTime": func(ts string) string {
			t, err := core.ParseTimestamp(ts)
			if err != nil {
				return ts
			}
			return t.Format(f.config.TimestampFormat)
		},
		"ToUpper":   strings.ToUpper,
		"ToLower":   strings.ToLower,
		"TrimSpace": strings.TrimSpace,
	}

	tmpl, err := template.New("entry").Funcs(funcMap).Parse(f.config.Template)
	if err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}

	f.template = tmpl
	return f, nil
}

// Formats the log entry using the template
func (f *TextFormatter) Format(entry core.LogEntry) ([]byte, error) {
	data := map[string]any{
		"Timestamp": entry.Timestamp,
		"Namespace": entry.Namespace,
		"Message":   entry.Message,
		"RequestID": entry.RequestID(),
		"Data":      "",
	}
	if entry.Data != nil {
		data["Data"] = entry.Data.String()
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		f.logger.Debug("msg", "Template execution failed, using fallback",
			"component", "text_formatter",
			"error", err)

		fallback := fmt.Sprintf("[%s] %s: %s\n",
			entry.Timestamp,
			entry.Namespace,
			entry.Message)
		return []byte(fallback), nil
	}

	// Ensure newline at end
	result := buf.Bytes()
	if len(result) == 0 || result[len(result)-1] != '\n' {
		result = append(result, '\n')
	}

	return result, nil
}

// Returns the formatter name
func (f *TextFormatter) Name() string {
	return "txt"
}

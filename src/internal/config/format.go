// FILE: nsdebug/src/internal/config/format.go
package config

import (
	"fmt"
	"time"
)

// DefaultTextTemplate renders one entry per line for terminal output
const DefaultTextTemplate = "[{{.Timestamp | FmtTime}}] {{.Namespace}}: {{.Message}}" +
	"{{ if .RequestID }} (request {{.RequestID}}){{ end }}" +
	"{{ if .Data }} {{.Data}}{{ end }}"

// FormatConfig selects and configures an entry formatter
type FormatConfig struct {
	// "txt", "json" or "raw"
	Type string `toml:"type"`

	TextFormatOptions *TextFormatterOptions `toml:"txt"`
	JSONFormatOptions *JSONFormatterOptions `toml:"json"`
}

// TextFormatterOptions configures the txt entry formatter
type TextFormatterOptions struct {
	// text/template source; fields: Timestamp, Namespace, Message, Data, RequestID
	Template string `toml:"template"`

	// Go time layout used by FmtTime
	TimestampFormat string `toml:"timestamp_format"`
}

// JSONFormatterOptions configures the json entry formatter
type JSONFormatterOptions struct {
	// Indent output; never used for the log file itself
	Pretty bool `toml:"pretty"`
}

func DefaultFormatConfig() *FormatConfig {
	return &FormatConfig{
		Type: "txt",
		TextFormatOptions: &TextFormatterOptions{
			Template:        DefaultTextTemplate,
			TimestampFormat: time.RFC3339,
		},
		JSONFormatOptions: &JSONFormatterOptions{},
	}
}

func validateFormatConfig(cfg *FormatConfig) error {
	switch cfg.Type {
	case "txt", "json", "raw", "":
	default:
		return fmt.Errorf("unknown format type '%s' (valid: txt, json, raw)", cfg.Type)
	}

	if cfg.TextFormatOptions != nil {
		if cfg.TextFormatOptions.Template == "" {
			cfg.TextFormatOptions.Template = DefaultTextTemplate
		}
		if cfg.TextFormatOptions.TimestampFormat == "" {
			cfg.TextFormatOptions.TimestampFormat = time.RFC3339
		}
	}

	return nil
}

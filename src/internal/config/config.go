// FILE: nsdebug/src/internal/config/config.go
package config

import (
	"os"
	"path/filepath"
	"time"

	"nsdebug/src/internal/core"
)

// Config is the full configuration surface of the debug logger
type Config struct {
	// Durable file output
	Output OutputConfig `toml:"output"`

	// Namespace gating
	Namespaces NamespaceConfig `toml:"namespaces"`

	// Operator-facing diagnostics of nsdebug itself
	Logging *LogConfig `toml:"logging"`

	// Human-readable entry rendering in the analysis CLI
	Format *FormatConfig `toml:"format"`
}

type OutputConfig struct {
	// Write accepted events to a file
	Enabled bool `toml:"enabled"`

	// Target JSON Lines file
	Path string `toml:"path"`

	// "minimal", "detailed" or "full"
	Mode string `toml:"mode"`

	// Entries held in memory before an inline flush
	BufferSize int64 `toml:"buffer_size"`

	// Periodic flush interval
	FlushIntervalMs int64 `toml:"flush_interval_ms"`

	// Ceiling on flush failure reports sent to the operator log
	ErrorReportsPerSec float64 `toml:"error_reports_per_sec"`
}

type NamespaceConfig struct {
	// Comma separated wildcard patterns, "-" prefix excludes: "api:*,-api:health"
	Enabled string `toml:"enabled"`

	// Global toggle enabling every namespace
	All bool `toml:"all"`
}

// FlushInterval returns the periodic flush interval
func (o *OutputConfig) FlushInterval() time.Duration {
	if o.FlushIntervalMs <= 0 {
		return core.DefaultFlushInterval
	}
	return time.Duration(o.FlushIntervalMs) * time.Millisecond
}

// DefaultOutputPath is the fixed temp-directory target
func DefaultOutputPath() string {
	return filepath.Join(os.TempDir(), core.DefaultDirName, core.DefaultFileName)
}

func defaults() *Config {
	return &Config{
		Output: OutputConfig{
			Enabled:            true,
			Path:               DefaultOutputPath(),
			Mode:               core.DefaultMode,
			BufferSize:         core.DefaultBufferSize,
			FlushIntervalMs:    core.DefaultFlushInterval.Milliseconds(),
			ErrorReportsPerSec: 1,
		},
		Namespaces: NamespaceConfig{},
		Logging:    DefaultLogConfig(),
		Format:     DefaultFormatConfig(),
	}
}

// Default returns a fresh copy of the built-in defaults
func Default() *Config {
	return defaults()
}

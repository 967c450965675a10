// FILE: nsdebug/src/internal/config/logging.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lixenwraith/log"
)

// LogConfig configures nsdebug's own operator log, the channel where
// initialization and flush failures are reported
type LogConfig struct {
	// Log level: "debug", "info", "warn", "error"
	Level string `toml:"level"`

	// Mirror records to the console
	Console bool `toml:"console"`

	// Directory for the operator log file
	Directory string `toml:"directory"`

	// Base name of the operator log file
	Name string `toml:"name"`
}

// DefaultLogConfig returns the logging defaults
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		Level:     "warn",
		Console:   true,
		Directory: filepath.Join(os.TempDir(), "nsdebug"),
		Name:      "nsdebug-operator",
	}
}

// NewLogger creates and starts the operator logger
func NewLogger(cfg *LogConfig) (*log.Logger, error) {
	if cfg == nil {
		cfg = DefaultLogConfig()
	}

	level, err := ParseLogLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	logConfig := log.DefaultConfig()
	logConfig.Level = level
	logConfig.Directory = cfg.Directory
	logConfig.Name = cfg.Name
	logConfig.EnableConsole = cfg.Console

	logger := log.NewLogger()
	if err := logger.ApplyConfig(logConfig); err != nil {
		return nil, fmt.Errorf("failed to configure logger: %w", err)
	}
	if err := logger.Start(); err != nil {
		return nil, fmt.Errorf("failed to start logger: %w", err)
	}

	return logger, nil
}

// ParseLogLevel maps a level name onto the log package levels
func ParseLogLevel(level string) (int64, error) {
	switch strings.ToLower(level) {
	case "debug":
		return int64(log.LevelDebug), nil
	case "info":
		return int64(log.LevelInfo), nil
	case "warn", "warning":
		return int64(log.LevelWarn), nil
	case "error":
		return int64(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}

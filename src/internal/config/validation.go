// FILE: nsdebug/src/internal/config/validation.go
package config

import (
	"fmt"
	"slices"

	"nsdebug/src/internal/mode"

	lconfig "github.com/lixenwraith/config"
)

// validateConfig is the centralized validator for the entire configuration
func validateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if err := validateOutputConfig(&cfg.Output); err != nil {
		return fmt.Errorf("output config: %w", err)
	}

	if cfg.Logging != nil {
		if err := validateLogConfig(cfg.Logging); err != nil {
			return fmt.Errorf("logging config: %w", err)
		}
	}

	if cfg.Format != nil {
		if err := validateFormatConfig(cfg.Format); err != nil {
			return fmt.Errorf("format config: %w", err)
		}
	}

	for i, fc := range ParseNamespaces(cfg.Namespaces.Enabled) {
		if err := validateFilter(i, &fc); err != nil {
			return fmt.Errorf("namespaces: %w", err)
		}
	}

	return nil
}

// Validate checks a programmatically built configuration
func (c *Config) Validate() error {
	return validateConfig(c)
}

func validateOutputConfig(cfg *OutputConfig) error {
	if !slices.Contains(mode.Names(), cfg.Mode) {
		return fmt.Errorf("invalid mode '%s' (valid: %v)", cfg.Mode, mode.Names())
	}

	if cfg.BufferSize < 1 {
		return fmt.Errorf("buffer_size must be positive: %d", cfg.BufferSize)
	}

	if cfg.FlushIntervalMs < 10 {
		return fmt.Errorf("flush interval too small: %d ms", cfg.FlushIntervalMs)
	}

	if cfg.ErrorReportsPerSec < 0 {
		return fmt.Errorf("error_reports_per_sec cannot be negative: %v", cfg.ErrorReportsPerSec)
	}

	if cfg.Enabled {
		if err := lconfig.NonEmpty(cfg.Path); err != nil {
			return fmt.Errorf("enabled output requires 'path'")
		}
	}

	return nil
}

func validateLogConfig(cfg *LogConfig) error {
	if _, err := ParseLogLevel(cfg.Level); err != nil {
		return err
	}

	if err := lconfig.NonEmpty(cfg.Name); err != nil {
		return fmt.Errorf("logging requires 'name'")
	}

	return nil
}

// FILE: nsdebug/src/internal/config/filter.go
package config

import (
	"fmt"
	"strings"
)

// Filter types
const (
	FilterTypeInclude = "include"
	FilterTypeExclude = "exclude"
)

// FilterConfig selects namespaces by wildcard pattern
type FilterConfig struct {
	// "include" passes matching namespaces, "exclude" drops them
	Type string `toml:"type"`

	// Namespace patterns; "*" matches any run of characters
	Patterns []string `toml:"patterns"`
}

// ParseNamespaces splits an enable string such as "api:*,-api:health" into
// an include and an exclude filter
func ParseNamespaces(list string) []FilterConfig {
	include := FilterConfig{Type: FilterTypeInclude}
	exclude := FilterConfig{Type: FilterTypeExclude}

	for _, part := range strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' '
	}) {
		if strings.HasPrefix(part, "-") {
			if p := strings.TrimPrefix(part, "-"); p != "" {
				exclude.Patterns = append(exclude.Patterns, p)
			}
			continue
		}
		include.Patterns = append(include.Patterns, part)
	}

	return []FilterConfig{include, exclude}
}

func validateFilter(filterIndex int, cfg *FilterConfig) error {
	switch cfg.Type {
	case FilterTypeInclude, FilterTypeExclude, "":
	default:
		return fmt.Errorf("filter[%d]: invalid type '%s' (must be 'include' or 'exclude')",
			filterIndex, cfg.Type)
	}

	for i, pattern := range cfg.Patterns {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("filter[%d] pattern[%d]: empty pattern", filterIndex, i)
		}
	}

	return nil
}

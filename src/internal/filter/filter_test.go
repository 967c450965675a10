// FILE: nsdebug/src/internal/filter/filter_test.go
package filter

import (
	"testing"

	"nsdebug/src/internal/config"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func TestNewFilter(t *testing.T) {
	logger := newTestLogger()

	t.Run("SuccessWithDefaults", func(t *testing.T) {
		cfg := config.FilterConfig{Patterns: []string{"api"}}
		f, err := NewFilter(cfg, logger)
		assert.NoError(t, err)
		assert.NotNil(t, f)
		assert.Equal(t, config.FilterTypeInclude, f.config.Type)
	})

	t.Run("ErrorEmptyPattern", func(t *testing.T) {
		cfg := config.FilterConfig{Patterns: []string{"api", "  "}}
		f, err := NewFilter(cfg, logger)
		assert.Error(t, err)
		assert.Nil(t, f)
		assert.Contains(t, err.Error(), "invalid namespace pattern[1]")
	})
}

func TestCompileWildcard(t *testing.T) {
	testCases := []struct {
		pattern   string
		namespace string
		expected  bool
	}{
		{"api", "api", true},
		{"api", "api:v2", false},
		{"api:*", "api:v2", true},
		{"api:*", "api:", true},
		{"api:*", "apix", false},
		{"*", "anything", true},
		{"*:db", "service:db", true},
		{"a.b", "axb", false},
		{"db(1)", "db(1)", true},
	}

	for _, tc := range testCases {
		t.Run(tc.pattern+"_"+tc.namespace, func(t *testing.T) {
			re, err := CompileWildcard(tc.pattern)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, re.MatchString(tc.namespace))
		})
	}
}

func TestFilter_Apply(t *testing.T) {
	logger := newTestLogger()

	testCases := []struct {
		name      string
		cfg       config.FilterConfig
		namespace string
		expected  bool
	}{
		{
			name:      "IncludeMatch",
			cfg:       config.FilterConfig{Type: config.FilterTypeInclude, Patterns: []string{"api:*", "db"}},
			namespace: "api:users",
			expected:  true,
		},
		{
			name:      "IncludeNoMatch",
			cfg:       config.FilterConfig{Type: config.FilterTypeInclude, Patterns: []string{"api:*", "db"}},
			namespace: "cache",
			expected:  false,
		},
		{
			name:      "ExcludeMatch",
			cfg:       config.FilterConfig{Type: config.FilterTypeExclude, Patterns: []string{"api:health"}},
			namespace: "api:health",
			expected:  false,
		},
		{
			name:      "ExcludeNoMatch",
			cfg:       config.FilterConfig{Type: config.FilterTypeExclude, Patterns: []string{"api:health"}},
			namespace: "api:users",
			expected:  true,
		},
		{
			name:      "NoPatterns",
			cfg:       config.FilterConfig{Type: config.FilterTypeInclude, Patterns: []string{}},
			namespace: "anything",
			expected:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := NewFilter(tc.cfg, logger)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, f.Apply(tc.namespace))
		})
	}
}

func TestFilter_UpdatePatterns(t *testing.T) {
	logger := newTestLogger()
	f, err := NewFilter(config.FilterConfig{Type: config.FilterTypeInclude, Patterns: []string{"api"}}, logger)
	require.NoError(t, err)

	assert.False(t, f.Apply("db"))
	require.NoError(t, f.UpdatePatterns([]string{"api", "db"}))
	assert.True(t, f.Apply("db"))
	assert.Equal(t, []string{"api", "db"}, f.Patterns())

	assert.Error(t, f.UpdatePatterns([]string{""}))
	assert.Equal(t, 2, f.PatternCount(), "failed update keeps previous patterns")

	stats := f.GetStats()
	assert.EqualValues(t, 2, stats["total_processed"])
	assert.EqualValues(t, 1, stats["total_dropped"])
}

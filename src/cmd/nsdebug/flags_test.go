// FILE: nsdebug/src/cmd/nsdebug/flags_test.go
package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGlobalFlags(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		expected GlobalFlags
		rest     []string
	}{
		{
			name: "CommandOnly",
			args: []string{"analyze", "debug.log"},
			rest: []string{"analyze", "debug.log"},
		},
		{
			name:     "GlobalsBeforeCommand",
			args:     []string{"-q", "--config", "/etc/nsdebug.toml", "stats", "debug.log"},
			expected: GlobalFlags{Quiet: true, ConfigFile: "/etc/nsdebug.toml"},
			rest:     []string{"stats", "debug.log"},
		},
		{
			name:     "CommandFlagsUntouched",
			args:     []string{"tail", "debug.log", "-q"},
			expected: GlobalFlags{},
			rest:     []string{"tail", "debug.log", "-q"},
		},
		{
			name:     "NoColorAnywhere",
			args:     []string{"perf", "debug.log", "--no-color"},
			expected: GlobalFlags{NoColor: true},
			rest:     []string{"perf", "debug.log"},
		},
		{
			name:     "Version",
			args:     []string{"-v"},
			expected: GlobalFlags{ShowVersion: true},
			rest:     []string{},
		},
		{
			name:     "Help",
			args:     []string{"--help"},
			expected: GlobalFlags{ShowHelp: true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			flags, rest, err := ParseGlobalFlags(tc.args)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, *flags)
			assert.Equal(t, len(tc.rest), len(rest))
			for i := range tc.rest {
				assert.Equal(t, tc.rest[i], rest[i])
			}
		})
	}
}

func TestParseGlobalFlags_Unknown(t *testing.T) {
	_, _, err := ParseGlobalFlags([]string{"--bogus", "analyze"})
	assert.Error(t, err)
}

func TestUseColor_Disabled(t *testing.T) {
	assert.False(t, useColor(&GlobalFlags{NoColor: true}))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, useColor(&GlobalFlags{}))
}

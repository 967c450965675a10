// FILE: nsdebug/src/cmd/nsdebug/flags.go
package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// GlobalFlags are the options placed before the command name
type GlobalFlags struct {
	ConfigFile  string
	NoColor     bool
	Quiet       bool
	ShowVersion bool
	ShowHelp    bool
}

// ParseGlobalFlags parses global options and returns the command with its
// arguments. --no-color is accepted anywhere on the line.
func ParseGlobalFlags(args []string) (*GlobalFlags, []string, error) {
	flags := &GlobalFlags{}

	remaining := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--no-color" {
			flags.NoColor = true
			continue
		}
		remaining = append(remaining, arg)
	}

	fs := pflag.NewFlagSet("nsdebug", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	fs.StringVarP(&flags.ConfigFile, "config", "c", "", "Config file path")
	fs.BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress error messages")
	fs.BoolVarP(&flags.ShowVersion, "version", "v", false, "Show version information")

	if err := fs.Parse(remaining); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			flags.ShowHelp = true
			return flags, nil, nil
		}
		return nil, nil, err
	}

	return flags, fs.Args(), nil
}

// useColor reports whether reports should be colored: not disabled by
// flag or NO_COLOR, and stdout is a terminal
func useColor(flags *GlobalFlags) bool {
	if flags.NoColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

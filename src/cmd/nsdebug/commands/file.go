// FILE: nsdebug/src/cmd/nsdebug/commands/file.go
package commands

import (
	"errors"
	"fmt"

	"nsdebug/src/internal/config"
	"nsdebug/src/internal/core"
	"nsdebug/src/internal/format"
	"nsdebug/src/internal/reader"
	"nsdebug/src/internal/report"

	"github.com/spf13/pflag"
)

// fileCommand holds what every command reading a log file shares
type fileCommand struct {
	env  *Env
	name string
}

func (c *fileCommand) newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(c.name, pflag.ContinueOnError)
	fs.SetOutput(c.env.Stderr)
	fs.Usage = func() {}
	return fs
}

// parse parses flags and returns the single file argument. A help flag
// prints help and returns pflag.ErrHelp.
func (c *fileCommand) parse(fs *pflag.FlagSet, args []string, help string) (string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprint(c.env.Stdout, help)
			return "", err
		}
		return "", usageError("%s: %v", c.name, err)
	}

	switch fs.NArg() {
	case 0:
		return "", usageError("%s: missing log file argument\n\nUsage: nsdebug %s <file>", c.name, c.name)
	case 1:
		return fs.Arg(0), nil
	default:
		return "", usageError("%s: expected one log file, got %d arguments", c.name, fs.NArg())
	}
}

// load reads every entry of path
func (c *fileCommand) load(path string) ([]core.LogEntry, error) {
	entries, err := reader.ReadAll(path)
	if err != nil {
		return nil, c.readError(path, err)
	}
	c.loaded(path, len(entries))
	return entries, nil
}

// loadComplete also returns where following the file should resume
func (c *fileCommand) loadComplete(path string) ([]core.LogEntry, int64, error) {
	entries, offset, err := reader.ReadComplete(path)
	if err != nil {
		return nil, 0, c.readError(path, err)
	}
	c.loaded(path, len(entries))
	return entries, offset, nil
}

func (c *fileCommand) readError(path string, err error) error {
	if errors.Is(err, reader.ErrNotFound) {
		return usageError("log file not found: %s", path)
	}
	return fmt.Errorf("failed to read %s: %w", path, err)
}

func (c *fileCommand) loaded(path string, count int) {
	c.env.Logger.Debug("msg", "Log file loaded",
		"component", "cli",
		"command", c.name,
		"path", path,
		"entries", count)
}

func (c *fileCommand) renderer() *report.Renderer {
	return report.NewRenderer(c.env.Stdout, c.env.Color)
}

// formatter builds the entry formatter from config, with formatType
// overriding the configured type when set
func (c *fileCommand) formatter(formatType string) (format.Formatter, error) {
	cfg := config.DefaultFormatConfig()
	if c.env.Config != nil && c.env.Config.Format != nil {
		copied := *c.env.Config.Format
		cfg = &copied
	}
	if formatType != "" {
		cfg.Type = formatType
	}

	f, err := format.New(cfg, c.env.Logger)
	if err != nil {
		return nil, usageError("%s: %v", c.name, err)
	}
	return f, nil
}

// handled reports whether err is a help request, which is not a failure
func handled(err error) error {
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	return err
}

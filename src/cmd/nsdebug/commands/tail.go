// FILE: nsdebug/src/cmd/nsdebug/commands/tail.go
package commands

import (
	"context"
	"fmt"

	"nsdebug/src/internal/analysis"
	"nsdebug/src/internal/core"
	"nsdebug/src/internal/reader"
)

// TailCommand prints the last entries of a log file
type TailCommand struct {
	fileCommand
}

func NewTailCommand(env *Env) *TailCommand {
	return &TailCommand{fileCommand{env: env, name: "tail"}}
}

func (c *TailCommand) Execute(args []string) error {
	fs := c.newFlagSet()
	lines := fs.IntP("lines", "n", core.DefaultTailLines, "Number of entries to show")
	formatType := fs.StringP("format", "f", "", "Entry format: txt, json, raw")
	follow := fs.BoolP("follow", "F", false, "Keep printing entries as they are appended")

	path, err := c.parse(fs, args, c.Help())
	if err != nil {
		return handled(err)
	}
	if *follow && path == "-" {
		return usageError("tail: --follow cannot read standard input")
	}
	if *follow && reader.IsCompressed(path) {
		return usageError("tail: --follow cannot read compressed file %s", path)
	}
	if *lines <= 0 {
		return usageError("tail: --lines must be positive: %d", *lines)
	}

	f, err := c.formatter(*formatType)
	if err != nil {
		return err
	}

	var entries []core.LogEntry
	var offset int64
	if *follow {
		// Following resumes exactly where this read stopped
		entries, offset, err = c.loadComplete(path)
	} else {
		entries, err = c.load(path)
	}
	if err != nil {
		return err
	}

	if err := c.renderer().Entries("Last entries", analysis.Tail(entries, *lines), f); err != nil {
		return err
	}
	if !*follow {
		return nil
	}

	ctx := c.env.Context
	if ctx == nil {
		ctx = context.Background()
	}

	var writeErr error
	watcher := reader.NewWatcher(path, reader.DefaultPollInterval, func(e core.LogEntry) {
		line, err := f.Format(e)
		if err == nil {
			_, err = c.env.Stdout.Write(line)
		}
		if err != nil && writeErr == nil {
			writeErr = fmt.Errorf("failed to print entry: %w", err)
		}
	}, c.env.Logger)

	if err := watcher.WatchFrom(ctx, offset); err != nil {
		return err
	}
	return writeErr
}

func (c *TailCommand) Description() string {
	return "Show the last entries of a log"
}

func (c *TailCommand) Help() string {
	return `Tail Command - Show the last entries

Usage:
  nsdebug tail <file> [options]

Options:
  -n, --lines <n>       Number of entries to show (default: 50)
  -f, --format <type>   Entry format: txt, json, raw (default from config)
  -F, --follow          Keep printing entries as they are appended, until
                        interrupted; survives truncation and rotation

Use - as the file to read standard input. --follow needs an uncompressed file.
`
}

// FILE: nsdebug/src/cmd/nsdebug/commands/errors_cmd.go
package commands

import (
	"nsdebug/src/internal/analysis"
)

// ErrorsCommand lists every error entry of a log file
type ErrorsCommand struct {
	fileCommand
}

func NewErrorsCommand(env *Env) *ErrorsCommand {
	return &ErrorsCommand{fileCommand{env: env, name: "errors"}}
}

func (c *ErrorsCommand) Execute(args []string) error {
	fs := c.newFlagSet()
	formatType := fs.StringP("format", "f", "", "Entry format: txt, json, raw")

	path, err := c.parse(fs, args, c.Help())
	if err != nil {
		return handled(err)
	}

	f, err := c.formatter(*formatType)
	if err != nil {
		return err
	}

	entries, err := c.load(path)
	if err != nil {
		return err
	}

	return c.renderer().Entries("Errors", analysis.Errors(entries), f)
}

func (c *ErrorsCommand) Description() string {
	return "List all error entries in file order"
}

func (c *ErrorsCommand) Help() string {
	return `Errors Command - List error entries

Usage:
  nsdebug errors <file> [options]

Options:
  -f, --format <type>   Entry format: txt, json, raw (default from config)

An entry is an error when its data carries a non-empty "error" field or
its message contains "error" or "failed" in any case.
`
}

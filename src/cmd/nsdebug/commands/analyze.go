// FILE: nsdebug/src/cmd/nsdebug/commands/analyze.go
package commands

import (
	"nsdebug/src/internal/analysis"
)

// AnalyzeCommand prints the overview of a log file
type AnalyzeCommand struct {
	fileCommand
}

func NewAnalyzeCommand(env *Env) *AnalyzeCommand {
	return &AnalyzeCommand{fileCommand{env: env, name: "analyze"}}
}

func (c *AnalyzeCommand) Execute(args []string) error {
	path, err := c.parse(c.newFlagSet(), args, c.Help())
	if err != nil {
		return handled(err)
	}

	entries, err := c.load(path)
	if err != nil {
		return err
	}

	c.renderer().Summary(analysis.Summarize(entries))
	return nil
}

func (c *AnalyzeCommand) Description() string {
	return "Summarize namespaces, errors, timings and time range"
}

func (c *AnalyzeCommand) Help() string {
	return `Analyze Command - Summarize a debug log

Usage:
  nsdebug analyze <file>

Output includes:
  - Total entries and time range
  - Entry count per namespace
  - Error count with the first 3 errors
  - Performance entry count with avg/min/max duration

Compressed logs (.gz, .zst) are read transparently.
`
}

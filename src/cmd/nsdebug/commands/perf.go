// FILE: nsdebug/src/cmd/nsdebug/commands/perf.go
package commands

import (
	"nsdebug/src/internal/analysis"
)

// PerfCommand prints timing aggregates of a log file
type PerfCommand struct {
	fileCommand
}

func NewPerfCommand(env *Env) *PerfCommand {
	return &PerfCommand{fileCommand{env: env, name: "perf"}}
}

func (c *PerfCommand) Execute(args []string) error {
	path, err := c.parse(c.newFlagSet(), args, c.Help())
	if err != nil {
		return handled(err)
	}

	entries, err := c.load(path)
	if err != nil {
		return err
	}

	c.renderer().Perf(analysis.Perf(entries))
	return nil
}

func (c *PerfCommand) Description() string {
	return "Aggregate durations per operation and list the slowest"
}

func (c *PerfCommand) Help() string {
	return `Perf Command - Performance analysis of a debug log

Usage:
  nsdebug perf <file>

Entries whose data holds duration, elapsed or timing are grouped by
message. Each group reports its count and, when numeric values exist,
avg/min/max. The 5 entries with the highest duration are listed last.
`
}

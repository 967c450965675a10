// FILE: nsdebug/src/cmd/nsdebug/commands/stats.go
package commands

import (
	"nsdebug/src/internal/analysis"
)

// StatsCommand prints aggregate counts of a log file
type StatsCommand struct {
	fileCommand
}

func NewStatsCommand(env *Env) *StatsCommand {
	return &StatsCommand{fileCommand{env: env, name: "stats"}}
}

func (c *StatsCommand) Execute(args []string) error {
	path, err := c.parse(c.newFlagSet(), args, c.Help())
	if err != nil {
		return handled(err)
	}

	entries, err := c.load(path)
	if err != nil {
		return err
	}

	c.renderer().Statistics(analysis.Stats(entries))
	return nil
}

func (c *StatsCommand) Description() string {
	return "Show top namespaces, request count and message patterns"
}

func (c *StatsCommand) Help() string {
	return `Stats Command - Aggregate statistics of a debug log

Usage:
  nsdebug stats <file>

Output includes:
  - Top 10 namespaces with their share of all entries
  - Number of distinct request ids
  - Top 5 namespace and message patterns (first 50 characters)
`
}

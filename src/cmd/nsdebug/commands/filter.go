// FILE: nsdebug/src/cmd/nsdebug/commands/filter.go
package commands

import (
	"time"

	"nsdebug/src/internal/analysis"
	"nsdebug/src/internal/core"
)

// FilterCommand selects entries by namespace and time window
type FilterCommand struct {
	fileCommand
}

func NewFilterCommand(env *Env) *FilterCommand {
	return &FilterCommand{fileCommand{env: env, name: "filter"}}
}

func (c *FilterCommand) Execute(args []string) error {
	fs := c.newFlagSet()
	var (
		namespace  = fs.String("namespace", "", "Exact namespace to keep")
		after      = fs.String("after", "", "Keep entries strictly after this time (RFC 3339 or YYYY-MM-DD)")
		before     = fs.String("before", "", "Keep entries strictly before this time (RFC 3339 or YYYY-MM-DD)")
		limit      = fs.Int("limit", core.DefaultFilterLimit, "Maximum entries to show")
		formatType = fs.StringP("format", "f", "", "Entry format: txt, json, raw")
	)

	path, err := c.parse(fs, args, c.Help())
	if err != nil {
		return handled(err)
	}

	opts := analysis.FilterOptions{Namespace: *namespace, Limit: *limit}
	if *limit <= 0 {
		return usageError("filter: --limit must be positive: %d", *limit)
	}
	if opts.After, err = parseTimeFlag("after", *after); err != nil {
		return err
	}
	if opts.Before, err = parseTimeFlag("before", *before); err != nil {
		return err
	}

	f, err := c.formatter(*formatType)
	if err != nil {
		return err
	}

	entries, err := c.load(path)
	if err != nil {
		return err
	}

	return c.renderer().Entries("Filtered entries", analysis.Filter(entries, opts), f)
}

func parseTimeFlag(name, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := core.ParseTimestamp(raw)
	if err != nil {
		return nil, usageError("filter: invalid --%s time %q", name, raw)
	}
	return &t, nil
}

func (c *FilterCommand) Description() string {
	return "Select entries by namespace and time window"
}

func (c *FilterCommand) Help() string {
	return `Filter Command - Select entries

Usage:
  nsdebug filter <file> [options]

Options:
  --namespace <ns>      Keep only this namespace (exact match)
  --after <time>        Keep entries strictly after time
  --before <time>       Keep entries strictly before time
  --limit <n>           Maximum entries to show (default: 50)
  -f, --format <type>   Entry format: txt, json, raw (default from config)

Times are RFC 3339 (2024-03-01T08:30:00Z) or a date (2024-03-01).

Examples:
  nsdebug filter debug.log --namespace api --after 2024-03-01T08:00:00Z
  nsdebug filter debug.log --before 2024-03-02 --limit 10 -f json
`
}

// FILE: nsdebug/src/cmd/nsdebug/commands/help.go
package commands

import (
	"fmt"
	"sort"
	"strings"
)

// generalHelpTemplate is the default help message shown when no specific command is requested.
const generalHelpTemplate = `nsdebug: Inspect namespace-scoped debug logs.

Usage:
  nsdebug [global options] <command> [arguments]

Commands:
%s

Global Options:
  -c, --config <path>      Path to configuration file (default: ~/.config/nsdebug.toml)
      --no-color           Disable colored output
  -q, --quiet              Suppress error messages
  -h, --help               Display this help message and exit
  -v, --version            Display version information and exit

For command-specific help:
  nsdebug help <command>
  nsdebug <command> --help

Configuration Sources (Precedence: Env > File > Defaults):
  - NSDEBUG_ environment variables, e.g. NSDEBUG_FORMAT_TYPE=json
  - TOML configuration file, see 'nsdebug config init'

Examples:
  # Overview of the default debug log
  nsdebug analyze /tmp/nsdebug/debug.log

  # API entries of one morning as JSON
  nsdebug filter debug.log --namespace api --after 2024-03-01T08:00:00Z -f json

  # Slowest operations
  nsdebug perf debug.log
`

// HelpCommand handles the display of general or command-specific help messages.
type HelpCommand struct {
	env    *Env
	router *CommandRouter
}

// NewHelpCommand creates a new help command handler.
func NewHelpCommand(env *Env, router *CommandRouter) *HelpCommand {
	return &HelpCommand{env: env, router: router}
}

// Execute displays the appropriate help message based on the provided arguments.
func (c *HelpCommand) Execute(args []string) error {
	// Check if help is requested for a specific command
	if len(args) > 0 && args[0] != "" {
		cmdName := args[0]

		if handler, exists := c.router.GetCommand(cmdName); exists {
			fmt.Fprint(c.env.Stdout, handler.Help())
			return nil
		}

		fmt.Fprint(c.env.Stderr, generalHelp(c.router))
		return &exitError{code: ExitUnknownCommand, err: fmt.Errorf("unknown command: %s", cmdName)}
	}

	fmt.Fprint(c.env.Stdout, generalHelp(c.router))
	return nil
}

// Description returns a brief one-line description of the command.
func (c *HelpCommand) Description() string {
	return "Display help information"
}

// Help returns the detailed help text for the 'help' command itself.
func (c *HelpCommand) Help() string {
	return `Help Command - Display help information

Usage:
  nsdebug help              Show general help
  nsdebug help <command>    Show help for a specific command

Examples:
  nsdebug help              # Show general help
  nsdebug help filter       # Show filter command help
  nsdebug filter --help     # Alternative way to get command help
`
}

func generalHelp(router *CommandRouter) string {
	return fmt.Sprintf(generalHelpTemplate, formatCommandList(router))
}

// formatCommandList creates a formatted and aligned list of all available commands.
func formatCommandList(router *CommandRouter) string {
	commands := router.GetCommands()

	// Sort command names for consistent output
	names := make([]string, 0, len(commands))
	maxLen := 0
	for name := range commands {
		names = append(names, name)
		if len(name) > maxLen {
			maxLen = len(name)
		}
	}
	sort.Strings(names)

	// Format each command with aligned descriptions
	var lines []string
	for _, name := range names {
		handler := commands[name]
		padding := strings.Repeat(" ", maxLen-len(name)+2)
		lines = append(lines, fmt.Sprintf("  %s%s%s", name, padding, handler.Description()))
	}

	return strings.Join(lines, "\n")
}

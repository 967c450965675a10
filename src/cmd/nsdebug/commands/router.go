// FILE: nsdebug/src/cmd/nsdebug/commands/router.go
package commands

import (
	"context"
	"fmt"
	"io"

	"nsdebug/src/internal/config"

	"github.com/lixenwraith/log"
)

// Handler defines the interface required for all subcommands.
type Handler interface {
	Execute(args []string) error
	Description() string
	Help() string
}

// Env carries the process-wide settings every command shares.
type Env struct {
	// Cancelled on interrupt; bounds long-running commands such as tail --follow
	Context context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Color   bool
	Config  *config.Config
	Logger  *log.Logger
}

// CommandRouter handles the routing of CLI arguments to the appropriate subcommand handler.
type CommandRouter struct {
	env      *Env
	commands map[string]Handler
}

// NewCommandRouter creates and initializes the command router with all available commands.
func NewCommandRouter(env *Env) *CommandRouter {
	router := &CommandRouter{
		env:      env,
		commands: make(map[string]Handler),
	}

	// Register available commands
	router.commands["analyze"] = NewAnalyzeCommand(env)
	router.commands["filter"] = NewFilterCommand(env)
	router.commands["stats"] = NewStatsCommand(env)
	router.commands["tail"] = NewTailCommand(env)
	router.commands["errors"] = NewErrorsCommand(env)
	router.commands["perf"] = NewPerfCommand(env)
	router.commands["config"] = NewConfigCommand(env)
	router.commands["version"] = NewVersionCommand(env)
	router.commands["help"] = NewHelpCommand(env, router)

	return router
}

// Route executes the subcommand named by args[0]. args excludes the program name.
func (r *CommandRouter) Route(args []string) error {
	help := r.commands["help"]

	if len(args) == 0 {
		if err := help.Execute(nil); err != nil {
			return err
		}
		return usageError("no command specified")
	}

	cmdName := args[0]

	if cmdName == "-h" || cmdName == "--help" {
		return help.Execute(nil)
	}
	if cmdName == "-v" || cmdName == "--version" {
		return r.commands["version"].Execute(nil)
	}

	handler, exists := r.commands[cmdName]
	if !exists {
		fmt.Fprintf(r.env.Stderr, "Unknown command: %s\n\n", cmdName)
		fmt.Fprint(r.env.Stderr, generalHelp(r))
		return &exitError{code: ExitUnknownCommand, err: fmt.Errorf("unknown command: %s", cmdName)}
	}

	r.env.Logger.Debug("msg", "Executing command",
		"component", "cli",
		"command", cmdName,
		"args", len(args)-1)

	return handler.Execute(args[1:])
}

// GetCommand returns a specific command handler by its name.
func (r *CommandRouter) GetCommand(name string) (Handler, bool) {
	cmd, exists := r.commands[name]
	return cmd, exists
}

// GetCommands returns a map of all registered commands.
func (r *CommandRouter) GetCommands() map[string]Handler {
	return r.commands
}

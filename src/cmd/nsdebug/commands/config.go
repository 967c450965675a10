// FILE: nsdebug/src/cmd/nsdebug/commands/config.go
package commands

import (
	"errors"
	"fmt"
	"os"

	"nsdebug/src/internal/config"

	"github.com/spf13/pflag"
)

// ConfigCommand writes and locates the configuration file
type ConfigCommand struct {
	env *Env
}

func NewConfigCommand(env *Env) *ConfigCommand {
	return &ConfigCommand{env: env}
}

func (c *ConfigCommand) Execute(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(c.env.Stdout, c.Help())
		return usageError("config: missing subcommand")
	}

	switch args[0] {
	case "init":
		return c.init(args[1:])
	case "path":
		fmt.Fprintln(c.env.Stdout, config.GetConfigPath())
		return nil
	case "-h", "--help":
		fmt.Fprint(c.env.Stdout, c.Help())
		return nil
	default:
		return usageError("config: unknown subcommand %q", args[0])
	}
}

func (c *ConfigCommand) init(args []string) error {
	fs := pflag.NewFlagSet("config init", pflag.ContinueOnError)
	fs.SetOutput(c.env.Stderr)
	fs.Usage = func() {}

	path := fs.StringP("path", "p", config.GetConfigPath(), "Destination of the config file")
	force := fs.Bool("force", false, "Overwrite an existing file")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprint(c.env.Stdout, c.Help())
			return nil
		}
		return usageError("config init: %v", err)
	}

	if _, err := os.Stat(*path); err == nil && !*force {
		return usageError("config init: %s already exists (use --force to overwrite)", *path)
	}

	if err := config.Default().SaveToFile(*path); err != nil {
		return err
	}

	c.env.Logger.Info("msg", "Default configuration written",
		"component", "cli",
		"path", *path)
	fmt.Fprintf(c.env.Stdout, "Configuration written to %s\n", *path)
	return nil
}

func (c *ConfigCommand) Description() string {
	return "Write a default config file or show its location"
}

func (c *ConfigCommand) Help() string {
	return `Config Command - Manage the configuration file

Usage:
  nsdebug config init [options]   Write the default configuration
  nsdebug config path             Print the config file location

Options (init):
  -p, --path <file>   Destination (default: resolved config path)
      --force         Overwrite an existing file

The location is resolved from NSDEBUG_CONFIG_FILE, NSDEBUG_CONFIG_DIR,
then ~/.config/nsdebug.toml.
`
}

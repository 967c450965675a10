// FILE: nsdebug/src/cmd/nsdebug/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nsdebug/src/cmd/nsdebug/commands"
	"nsdebug/src/internal/config"

	"github.com/lixenwraith/log"
)

var logger *log.Logger

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Parse flags first to get quiet mode early
	flags, cmdArgs, err := ParseGlobalFlags(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\nRun 'nsdebug help' for usage\n", err)
		return commands.ExitFailure
	}

	InitOutputHandler(flags.Quiet)

	switch {
	case flags.ShowHelp:
		cmdArgs = []string{"help"}
	case flags.ShowVersion:
		cmdArgs = []string{"version"}
	}

	// Set config file environment if specified
	if flags.ConfigFile != "" {
		if _, err := os.Stat(flags.ConfigFile); err != nil {
			Error("Config file not found: %s\n", flags.ConfigFile)
			return commands.ExitFailure
		}
		os.Setenv("NSDEBUG_CONFIG_FILE", flags.ConfigFile)
	}

	cfg, err := config.Load(nil)
	if err != nil {
		Error("Failed to load config: %v\n", err)
		return commands.ExitFailure
	}

	if err := initializeLogger(cfg); err != nil {
		Error("Failed to initialize logger: %v\n", err)
		return commands.ExitFailure
	}
	defer shutdownLogger()

	// Interrupts end long-running commands such as tail --follow cleanly
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := &commands.Env{
		Context: ctx,
		Stdout:  output.Stdout(),
		Stderr:  output.Stderr(),
		Color:   useColor(flags),
		Config:  cfg,
		Logger:  logger,
	}

	router := commands.NewCommandRouter(env)
	if err := router.Route(cmdArgs); err != nil {
		Error("Error: %v\n", err)
		return commands.ExitCode(err)
	}

	return commands.ExitOK
}

// initializeLogger starts the operator log. Console mirroring is off so
// diagnostics never mix with reports on stdout.
func initializeLogger(cfg *config.Config) error {
	logCfg := config.DefaultLogConfig()
	if cfg.Logging != nil {
		copied := *cfg.Logging
		logCfg = &copied
	}
	logCfg.Console = false

	var err error
	logger, err = config.NewLogger(logCfg)
	return err
}

func shutdownLogger() {
	if logger != nil {
		if err := logger.Shutdown(2 * time.Second); err != nil {
			// Best effort - can't log the shutdown error
			Error("Logger shutdown error: %v\n", err)
		}
	}
}

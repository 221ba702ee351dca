package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/tcconsole/internal/config"
	"github.com/cory-johannsen/tcconsole/internal/console"
	"github.com/cory-johannsen/tcconsole/internal/console/typereader"
	"github.com/cory-johannsen/tcconsole/internal/gamecmds"
	"github.com/cory-johannsen/tcconsole/internal/observability"
	"github.com/cory-johannsen/tcconsole/internal/repl"
	"github.com/cory-johannsen/tcconsole/internal/server"
)

func run(cmd *cobra.Command, o options) error {
	start := time.Now()

	cfg, err := loadConfig(cmd, o)
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	mode, err := console.ParseRunMode(cfg.Console.Mode)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	out := cmd.OutOrStdout()
	settings := gamecmds.DefaultSettings()
	c, err := buildConsole(cfg.Console, mode, settings, afero.NewOsFs(), out, cancel, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	logger.Info("console ready",
		zap.Stringer("mode", c.Mode()),
		zap.Int("commands", c.Registry().Len()),
		zap.Duration("elapsed", time.Since(start)),
	)

	if err := runStartup(c, cfg.Console.Autoexec, o.execs, o.sets); err != nil {
		return err
	}

	r := repl.New(c, cmd.InOrStdin(), out, interactive(cmd))
	lc := server.NewLifecycle(logger)
	lc.Add("console", r)
	return lc.Run(ctx)
}

// loadConfig loads the configuration file and applies flag overrides.
func loadConfig(cmd *cobra.Command, o options) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Console.Mode = o.mode
	}
	if flags.Changed("headless") {
		cfg.Console.Headless = o.headless
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// buildConsole registers the game commands plus quit, which calls stop.
//
// Postcondition: Returns a sealed Console reading batch files from fs.
func buildConsole(
	cfg config.ConsoleConfig,
	mode console.RunMode,
	settings *gamecmds.Settings,
	fs afero.Fs,
	out io.Writer,
	stop func(),
	logger *zap.Logger,
) (*console.Console, error) {
	reporter := repl.NewReporter(observability.NewConsoleReporter(logger), out)
	b := console.NewBuilder(typereader.Default(), reporter, cfg.Headless)

	session := gamecmds.NewSession(mode, logger)
	if err := gamecmds.Register(b, settings, session, logger); err != nil {
		return nil, err
	}
	if err := b.Command(console.Command{
		Name:       "quit",
		Summary:    "Exits the console",
		Permission: console.PermissionBoth,
		Handler: func([]string) error {
			stop()
			return nil
		},
	}); err != nil {
		return nil, err
	}

	return console.New(b, console.Options{
		Mode:        session.Mode,
		Fs:          fs,
		ConfigDir:   cfg.ConfigDir,
		HistorySize: cfg.HistorySize,
	}), nil
}

// runStartup runs autoexec, then each exec batch, then each name=value
// assignment, so launch assignments override batch files.
//
// A missing autoexec is not an error; a missing exec batch is.
func runStartup(c *console.Console, autoexec string, execs, sets []string) error {
	if autoexec != "" {
		if err := c.ExecuteFile(autoexec); err != nil && !errors.Is(err, console.ErrFileNotFound) {
			return fmt.Errorf("running %s: %w", autoexec, err)
		}
	}
	for _, name := range execs {
		if err := c.ExecuteFile(name); err != nil {
			return fmt.Errorf("running %s: %w", name, err)
		}
	}
	for _, s := range sets {
		name, value, err := parseAssignment(s)
		if err != nil {
			return err
		}
		if out := c.Invoke(name, []string{value}); out.Failed() {
			return fmt.Errorf("--set %s: %w", s, out.Err)
		}
	}
	return nil
}

// parseAssignment splits "name=value". The value may be empty or contain '='.
func parseAssignment(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("--set %q: expected name=value", s)
	}
	return name, value, nil
}

// interactive reports whether both standard streams are terminals.
func interactive(cmd *cobra.Command) bool {
	in, ok := cmd.InOrStdin().(*os.File)
	if !ok || !repl.IsTerminal(in) {
		return false
	}
	out, ok := cmd.OutOrStdout().(*os.File)
	return ok && repl.IsTerminal(out)
}

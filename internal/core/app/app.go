// Package app is the registry and dispatcher of zk: it owns the raw
// arguments, the output environment and the registered commands, parses the
// arguments against the combined grammar and runs the selected command.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nightconcept/zk/internal/core/command"
)

const (
	msgNotSpecified = "zk_cli command is not specified"
	msgUnknown      = "command is unknown"
)

// App holds everything one process invocation needs.
type App struct {
	args     []string
	env      *command.Environment
	commands []command.Command
	parser   *Parser
	logger   *slog.Logger
	version  string
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger used for registration and dispatch debug logs.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithVersion sets the version reported by --version.
func WithVersion(v string) Option {
	return func(a *App) {
		a.version = v
	}
}

// New returns an App with no commands. args is copied; its first element is
// conventionally the program name. Everything commands print goes to w.
func New(args []string, w io.Writer, opts ...Option) *App {
	a := &App{
		args:   append([]string(nil), args...),
		env:    command.NewEnvironment(w),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.parser = NewParser(a.env, a.version)
	return a
}

// AddCommand constructs a command and registers it together with its grammar.
// Empty and duplicate names are rejected and leave the App unchanged.
func (a *App) AddCommand(factory command.Factory) error {
	if factory == nil {
		return command.Registration("nil command factory")
	}
	cmd := factory()
	if cmd == nil {
		return command.Registration("command factory returned nil")
	}
	name := cmd.Name()
	if name == "" {
		return command.Registration("command name is empty")
	}
	if _, ok := a.lookup(name); ok {
		return command.Registration(fmt.Sprintf("command %q is already registered", name))
	}

	a.commands = append(a.commands, cmd)
	a.parser.Attach(name, cmd.Grammar())
	a.logger.Debug("command registered", "name", name, "total", len(a.commands))
	return nil
}

// Commands returns the registered command names in registration order.
func (a *App) Commands() []string {
	names := make([]string, 0, len(a.commands))
	for _, c := range a.commands {
		names = append(names, c.Name())
	}
	return names
}

// Run parses the stored arguments and runs the selected command, returning
// its error unchanged. Each call parses again.
func (a *App) Run(ctx context.Context) error {
	sel, err := a.parser.Parse(ctx, a.args)
	if err != nil {
		a.logger.Debug("argument parsing failed", "error", err)
		return command.ArgumentParsing(err)
	}
	if sel.Name == "" {
		return command.UnknownCommand(msgNotSpecified)
	}

	cmd, ok := a.lookup(sel.Name)
	if !ok {
		a.logger.Debug("selected command is not registered", "name", sel.Name)
		return command.UnknownCommand(msgUnknown)
	}

	a.logger.Debug("dispatching", "name", sel.Name, "args", sel.Options.Args())
	return cmd.Run(a.env, sel.Options)
}

func (a *App) lookup(name string) (command.Command, bool) {
	for _, c := range a.commands {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

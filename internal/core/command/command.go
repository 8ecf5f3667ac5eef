// Package command defines the contract every zk subcommand satisfies, the
// environment a command writes through and the errors dispatch can produce.
package command

import (
	"context"

	"github.com/urfave/cli/v2"
)

// Command is a named unit of work with its own argument grammar.
type Command interface {
	// Name is the subcommand token users type. It must be non-empty and stable.
	Name() string
	// Grammar describes the flags and positionals the command accepts. A fresh
	// node is returned on every call; its Name is overwritten with Name().
	Grammar() *cli.Command
	// Run performs the command, writing any output through env.
	Run(env *Environment, opts Options) error
}

// Factory constructs a Command before any argument is known.
type Factory func() Command

// Options is the parsed view of the selected command's arguments. Flags of
// the top-level grammar are reachable through the same accessors.
type Options struct {
	ctx *cli.Context
}

// NewOptions wraps a parsed grammar context. A nil context yields empty options.
func NewOptions(ctx *cli.Context) Options {
	return Options{ctx: ctx}
}

// String returns the value of a string flag, or "" when absent.
func (o Options) String(name string) string {
	if o.ctx == nil {
		return ""
	}
	return o.ctx.String(name)
}

// Bool returns the value of a boolean flag.
func (o Options) Bool(name string) bool {
	if o.ctx == nil {
		return false
	}
	return o.ctx.Bool(name)
}

// Int returns the value of an integer flag.
func (o Options) Int(name string) int {
	if o.ctx == nil {
		return 0
	}
	return o.ctx.Int(name)
}

// StringSlice returns every value given for a repeatable string flag.
func (o Options) StringSlice(name string) []string {
	if o.ctx == nil {
		return nil
	}
	return o.ctx.StringSlice(name)
}

// IsSet reports whether the flag was given on the command line or through its
// environment variable.
func (o Options) IsSet(name string) bool {
	if o.ctx == nil {
		return false
	}
	return o.ctx.IsSet(name)
}

// Args returns the positional arguments left after flag parsing.
func (o Options) Args() []string {
	if o.ctx == nil {
		return nil
	}
	return o.ctx.Args().Slice()
}

// Command returns the name of the grammar node that matched: the command's
// own name, or that of a nested subcommand.
func (o Options) Command() string {
	if o.ctx == nil || o.ctx.Command == nil {
		return ""
	}
	return o.ctx.Command.Name
}

// Context returns the context the parse ran under.
func (o Options) Context() context.Context {
	if o.ctx == nil || o.ctx.Context == nil {
		return context.Background()
	}
	return o.ctx.Context
}

// AppVersion is the version the top-level grammar was built with.
func (o Options) AppVersion() string {
	if o.ctx == nil || o.ctx.App == nil {
		return ""
	}
	return o.ctx.App.Version
}

package app

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/nightconcept/zk/internal/core/command"
)

const (
	// ProgramName is the name of the top-level grammar.
	ProgramName  = "zk_cli"
	programAbout = "A CLI note-taking application for Zettelkasten methodology."
)

var programAuthor = &cli.Author{Name: "Stepan Repin", Email: "stnrepin@gmail.com"}

// Selection is the outcome of a successful parse. An empty Name means no
// subcommand token was given.
type Selection struct {
	Name    string
	Options command.Options
}

// Parser adapts a urfave/cli grammar to parse-only use: attached subcommand
// nodes record which one matched instead of executing anything.
type Parser struct {
	w       io.Writer
	version string
	flags   []cli.Flag
	nodes   []*cli.Command
	names   []string

	// per-parse state, reset by Parse
	selected *Selection
	rootRan  bool
}

// NewParser builds the top-level grammar. Help, usage and version text is
// written to w.
func NewParser(w io.Writer, version string) *Parser {
	return &Parser{
		w:       w,
		version: version,
		flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the configuration file",
				EnvVars: []string{"ZK_CONFIG"},
			},
		},
	}
}

// Attach adds node to the top-level grammar as the subcommand name.
func (p *Parser) Attach(name string, node *cli.Command) {
	if node == nil {
		node = &cli.Command{}
	}
	node.Name = name
	p.capture(name, node)
	p.nodes = append(p.nodes, node)
	p.names = append(p.names, name)
}

// capture replaces the actions of node and its nested subcommands so a
// match records a selection of the top-level command name.
func (p *Parser) capture(name string, node *cli.Command) {
	node.Action = func(c *cli.Context) error {
		p.selected = &Selection{Name: name, Options: command.NewOptions(c)}
		return nil
	}
	if node.OnUsageError == nil {
		node.OnUsageError = passUsageError
	}
	if len(node.Subcommands) == 0 {
		node.HideHelpCommand = true
	}
	for _, sub := range node.Subcommands {
		p.capture(name, sub)
	}
}

// Names returns the attached subcommand names in attach order.
func (p *Parser) Names() []string {
	return append([]string(nil), p.names...)
}

// Parse matches args against the grammar. args is not modified.
func (p *Parser) Parse(ctx context.Context, args []string) (*Selection, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	argv := append([]string(nil), args...)
	if len(argv) == 0 {
		argv = []string{ProgramName}
	}

	p.selected = nil
	p.rootRan = false
	if err := p.grammar().RunContext(ctx, argv); err != nil {
		return nil, err
	}

	switch {
	case p.selected != nil:
		return p.selected, nil
	case p.rootRan:
		return &Selection{}, nil
	default:
		return nil, command.ErrHelpRequested
	}
}

// grammar assembles the top-level cli.App over the attached nodes. cli.App
// caches derived state on its first run, so each parse gets its own.
func (p *Parser) grammar() *cli.App {
	for _, n := range p.nodes {
		n.HelpName = ""
	}
	return &cli.App{
		Name:            ProgramName,
		Usage:           programAbout,
		Version:         p.version,
		Authors:         []*cli.Author{programAuthor},
		Writer:          p.w,
		ErrWriter:       p.w,
		HideHelpCommand: true,
		Flags:           append([]cli.Flag(nil), p.flags...),
		Commands:        append([]*cli.Command(nil), p.nodes...),
		Action:          p.rootAction,
		OnUsageError:    passUsageError,
		// The grammar never decides process exit status.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func (p *Parser) rootAction(c *cli.Context) error {
	// "help" reaches here only when no command claims the name.
	if c.Args().First() == "help" {
		if topic := c.Args().Get(1); topic != "" {
			return cli.ShowCommandHelp(c, topic)
		}
		return cli.ShowAppHelp(c)
	}
	if c.Args().Present() {
		if len(p.names) > 0 {
			return fmt.Errorf("unrecognized subcommand %q", c.Args().First())
		}
		// Nothing is attached, so no token can be a subcommand. Dispatch
		// reports it as unknown.
		p.selected = &Selection{Name: c.Args().First(), Options: command.NewOptions(c)}
		return nil
	}
	p.rootRan = true
	return nil
}

func passUsageError(_ *cli.Context, err error, _ bool) error {
	return err
}

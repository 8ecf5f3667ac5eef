// Package newnote implements the 'new' command, which creates a note in the
// configured working directory.
package newnote

import (
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/zk/internal/core/command"
	"github.com/nightconcept/zk/internal/core/config"
	"github.com/nightconcept/zk/internal/core/note"
)

// now is replaced in tests.
var now = time.Now

type newCommand struct{}

// NewCmd returns the "new" command.
func NewCmd() command.Command {
	return newCommand{}
}

func (newCommand) Name() string { return "new" }

func (newCommand) Grammar() *cli.Command {
	return &cli.Command{
		Usage:     "Create a new note",
		ArgsUsage: "TITLE...",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "tag",
				Aliases: []string{"t"},
				Usage:   "tag the note (repeatable)",
			},
		},
	}
}

func (newCommand) Run(env *command.Environment, opts command.Options) error {
	title := strings.TrimSpace(strings.Join(opts.Args(), " "))
	if title == "" {
		return command.Executionf("a note title is required")
	}

	cfg, err := config.LoadFrom(opts.String("config"))
	if err != nil {
		return command.Execution(err)
	}

	n := note.New(title, normalizeTags(opts.StringSlice("tag")), now())
	path, err := note.Create(cfg.WorkingDir, n)
	if err != nil {
		return command.Execution(err)
	}

	if _, err := color.New(color.FgGreen).Fprintf(env, "Created note %s\n", n.ID); err != nil {
		return command.IO(err)
	}
	return env.Println(path)
}

// normalizeTags trims tags, drops empty ones and removes case-insensitive duplicates.
func normalizeTags(raw []string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, t := range raw {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, t)
	}
	return tags
}

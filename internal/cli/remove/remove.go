// Package remove handles note removal.
package remove

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/zk/internal/core/command"
	"github.com/nightconcept/zk/internal/core/config"
	"github.com/nightconcept/zk/internal/core/note"
)

type removeCommand struct{}

// RemoveCmd handles the 'remove' subcommand
func RemoveCmd() command.Command {
	return removeCommand{}
}

func (removeCommand) Name() string { return "remove" }

func (removeCommand) Grammar() *cli.Command {
	return &cli.Command{
		Aliases:   []string{"rm"},
		Usage:     "Remove a note",
		ArgsUsage: "ID",
	}
}

func (removeCommand) Run(env *command.Environment, opts command.Options) error {
	args := opts.Args()
	if len(args) == 0 {
		return command.Executionf("a note ID argument is required")
	}
	id := args[0]

	cfg, err := config.LoadFrom(opts.String("config"))
	if err != nil {
		return command.Execution(err)
	}

	path, err := note.Find(cfg.WorkingDir, id)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return command.Executionf("note %s not found in %s", id, cfg.WorkingDir)
		}
		return command.Execution(err)
	}

	if err := os.Remove(path); err != nil {
		return command.Executionf("removing %s: %w", path, err)
	}

	_, err = color.New(color.FgRed).Fprintf(env, "- %s %s\n", id, filepath.Base(path))
	if err != nil {
		return command.IO(err)
	}
	return nil
}

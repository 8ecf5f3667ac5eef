// Package list implements the 'list' command for displaying notes.
package list

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/zk/internal/core/command"
	"github.com/nightconcept/zk/internal/core/config"
	"github.com/nightconcept/zk/internal/core/hasher"
	"github.com/nightconcept/zk/internal/core/note"
)

type listCommand struct{}

// ListCmd returns the command that displays all notes in the working directory.
func ListCmd() command.Command {
	return listCommand{}
}

func (listCommand) Name() string { return "list" }

func (listCommand) Grammar() *cli.Command {
	return &cli.Command{
		Aliases: []string{"ls"},
		Usage:   "Displays notes with their fingerprints.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "tag",
				Usage: "only show notes carrying this tag",
			},
		},
	}
}

func (listCommand) Run(env *command.Environment, opts command.Options) error {
	cfg, err := config.LoadFrom(opts.String("config"))
	if err != nil {
		return command.Execution(err)
	}

	entries, listErr := note.List(cfg.WorkingDir)
	if listErr != nil && entries == nil {
		return command.Execution(listErr)
	}
	if listErr != nil {
		// Unreadable notes are warnings; the rest is still listed.
		if err := env.Printf("Warning: %v\n", listErr); err != nil {
			return err
		}
	}

	if tag := opts.String("tag"); tag != "" {
		entries = filterByTag(entries, tag)
	}
	return printNotes(env, cfg.WorkingDir, entries)
}

func filterByTag(entries []note.Entry, tag string) []note.Entry {
	var kept []note.Entry
	for _, e := range entries {
		if e.Note.HasTag(tag) {
			kept = append(kept, e)
		}
	}
	return kept
}

// printNotes writes one "<id> <fingerprint> <title>" line per note.
func printNotes(env *command.Environment, dir string, entries []note.Entry) error {
	headerColor := color.New(color.FgCyan, color.Bold).SprintFunc()
	idColor := color.New(color.FgMagenta).SprintFunc()
	hashColor := color.New(color.FgYellow).SprintFunc()
	tagColor := color.New(color.FgHiBlack).SprintFunc()

	if err := env.Printf("%s %s\n", headerColor("notes:"), dir); err != nil {
		return err
	}
	if len(entries) == 0 {
		return env.Println("No notes found.")
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s %s %s", idColor(e.Note.ID), hashColor(hasher.Short(hasher.CalculateSHA256(e.Content))), e.Note.Title)
		if len(e.Note.Tags) > 0 {
			line += " " + tagColor("["+strings.Join(e.Note.Tags, ", ")+"]")
		}
		if err := env.Println(line); err != nil {
			return err
		}
	}
	return nil
}

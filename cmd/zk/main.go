// Title: zk CLI Application Entry Point
// Purpose: Registers the note-taking commands, runs the one selected by the
// process arguments and turns its error into a message and an exit code.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/fatih/color"

	initcmd "github.com/nightconcept/zk/internal/cli/init"
	"github.com/nightconcept/zk/internal/cli/list"
	"github.com/nightconcept/zk/internal/cli/newnote"
	"github.com/nightconcept/zk/internal/cli/remove"
	"github.com/nightconcept/zk/internal/cli/self"
	"github.com/nightconcept/zk/internal/core/app"
	"github.com/nightconcept/zk/internal/core/command"
)

// version is the application version, set at build time.
var version = "dev" // Default to "dev" if not set by ldflags

var factories = []command.Factory{
	initcmd.InitCmd,
	newnote.NewCmd,
	list.ListCmd,
	remove.RemoveCmd,
	self.SelfCmd,
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run builds and runs the application, returning the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	a := app.New(args, stdout, app.WithVersion(version), app.WithLogger(newLogger(stderr)))
	for _, f := range factories {
		if err := a.AddCommand(f); err != nil {
			log.New(stderr, "", 0).Printf("registering commands: %v", err)
			return 2
		}
	}

	err := a.Run(context.Background())
	if err == nil {
		return 0
	}
	return report(stderr, err)
}

// report prints err the way its kind calls for and picks an exit code.
func report(w io.Writer, err error) int {
	errPrefix := color.New(color.FgRed, color.Bold).SprintFunc()

	switch command.KindOf(err) {
	case command.KindArgumentParsing:
		if errors.Is(err, command.ErrHelpRequested) {
			return 0
		}
		fmt.Fprintf(w, "%s %v\n", errPrefix("error:"), err)
		fmt.Fprintln(w, "Run 'zk --help' for usage.")
		return 2
	default:
		fmt.Fprintf(w, "%s %v\n", errPrefix("error:"), err)
		return 1
	}
}

// newLogger logs dispatch details to w when ZK_DEBUG is set.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("ZK_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

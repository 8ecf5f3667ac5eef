package init

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/zk/internal/core/command"
	"github.com/nightconcept/zk/internal/core/config"
)

type initCommand struct{}

// InitCmd returns the "init" command, which writes the configuration file.
func InitCmd() command.Command {
	return initCommand{}
}

func (initCommand) Name() string { return "init" }

func (initCommand) Grammar() *cli.Command {
	return &cli.Command{
		Usage: "Initialize zk (writes the configuration file)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "directory notes are kept in (default: current directory)",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "overwrite an existing configuration file",
			},
		},
	}
}

func (initCommand) Run(env *command.Environment, opts command.Options) error {
	path, err := config.Path(opts.String("config"))
	if err != nil {
		return command.Execution(err)
	}

	if _, err := os.Stat(path); err == nil && !opts.Bool("force") {
		return command.Executionf("%s already exists, use --force to overwrite it", path)
	}

	dir, err := workingDir(opts.String("dir"))
	if err != nil {
		return command.Execution(err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return command.Executionf("creating notes directory %s: %w", dir, err)
	}

	if err := config.Write(path, &config.Config{WorkingDir: dir}); err != nil {
		return command.Execution(err)
	}

	if _, err := color.New(color.FgGreen).Fprintf(env, "Initialized zk in %s\n", dir); err != nil {
		return command.IO(err)
	}
	return env.Printf("Configuration written to %s\n", path)
}

// workingDir makes dir absolute, defaulting to the current directory.
func workingDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determining current directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	return abs, nil
}

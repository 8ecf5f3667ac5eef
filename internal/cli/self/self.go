// Package self provides self-management functionality for the zk CLI application.
package self

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/zk/internal/core/command"
)

const defaultRepoSlug = "nightconcept/zk"

// stdin answers the update confirmation prompt.
var stdin io.Reader = os.Stdin

type selfCommand struct{}

// SelfCmd creates a command for managing the zk CLI application's lifecycle,
// currently supporting self-update functionality.
func SelfCmd() command.Command {
	return selfCommand{}
}

func (selfCommand) Name() string { return "self" }

func (selfCommand) Grammar() *cli.Command {
	return &cli.Command{
		Usage: "Manage the zk CLI application itself",
		Subcommands: []*cli.Command{
			{
				Name:  "update",
				Usage: "Update zk to the latest version",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Automatically confirm the update",
					},
					&cli.BoolFlag{
						Name:  "check",
						Usage: "Check for available updates without installing",
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Specify a custom GitHub update source as 'owner/repo'",
					},
					&cli.BoolFlag{
						Name:  "verbose",
						Usage: "Enable verbose output",
					},
				},
			},
		},
	}
}

func (selfCommand) Run(env *command.Environment, opts command.Options) error {
	if opts.Command() != "update" {
		return command.Executionf("missing subcommand, try 'zk self update'")
	}
	u := &updater{env: env, verbose: opts.Bool("verbose")}
	return u.run(opts.Context(), opts)
}

// updater carries the state of one self-update run.
type updater struct {
	env     *command.Environment
	verbose bool
}

// logf prints only in verbose mode.
func (u *updater) logf(format string, a ...any) error {
	if !u.verbose {
		return nil
	}
	return u.env.Printf(format, a...)
}

// run handles the self-update process. It compares the running version with
// the latest GitHub release, asks for confirmation unless --yes is given and
// replaces the current executable.
func (u *updater) run(ctx context.Context, opts command.Options) error {
	currentVersionStr := opts.AppVersion()

	currentSemVer, err := u.parseVersion(currentVersionStr)
	if err != nil {
		return err
	}

	repoSlug, err := u.repoSlug(opts.String("source"))
	if err != nil {
		return err
	}

	up, err := u.newUpdater()
	if err != nil {
		return err
	}

	latestRelease, found, err := u.detectLatestVersion(ctx, up, repoSlug)
	if err != nil {
		return err
	}
	if !found || !latestRelease.GreaterThan(currentSemVer.String()) {
		return u.env.Printf("Current version %s is already the latest.\n", currentVersionStr)
	}

	if err := u.logf("Latest version detected: %s (Release URL: %s)\n", latestRelease.Version(), latestRelease.URL); err != nil {
		return err
	}
	if latestRelease.ReleaseNotes != "" {
		if err := u.logf("Release Notes:\n%s\n", latestRelease.ReleaseNotes); err != nil {
			return err
		}
	}

	if err := u.env.Printf("New version available: %s (current: %s)\n", latestRelease.Version(), currentVersionStr); err != nil {
		return err
	}
	if opts.Bool("check") {
		return nil
	}

	proceed, err := u.confirmUpdate(opts.Bool("yes"))
	if err != nil {
		return command.Execution(err)
	}
	if !proceed {
		return u.env.Println("Update cancelled.")
	}

	if err := u.env.Printf("Updating to %s...\n", latestRelease.Version()); err != nil {
		return err
	}
	execPath, err := os.Executable()
	if err != nil {
		return command.Executionf("could not get executable path: %w", err)
	}
	if err := u.logf("Current executable path: %s\n", execPath); err != nil {
		return err
	}

	if err := up.UpdateTo(ctx, latestRelease, execPath); err != nil {
		return command.Executionf("failed to update: %w", err)
	}
	return u.env.Printf("Successfully updated to version %s.\n", latestRelease.Version())
}

// parseVersion parses the running version, with or without a 'v' prefix.
func (u *updater) parseVersion(versionStr string) (*semver.Version, error) {
	if err := u.logf("zk current version: %s\n", versionStr); err != nil {
		return nil, err
	}

	v, err := semver.NewVersion(strings.TrimPrefix(versionStr, "v"))
	if err != nil {
		return nil, command.Executionf("parsing current version %q: %w (expected vX.Y.Z or X.Y.Z)", versionStr, err)
	}

	if err := u.logf("Parsed current semantic version: %s\n", v.String()); err != nil {
		return nil, err
	}
	return v, nil
}

// repoSlug determines the GitHub repository to update from: the default
// unless a valid --source is provided.
func (u *updater) repoSlug(sourceFlag string) (string, error) {
	if sourceFlag == "" {
		return defaultRepoSlug, u.logf("Using default GitHub source: %s\n", defaultRepoSlug)
	}
	parts := strings.Split(sourceFlag, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", command.Executionf("invalid --source format, expected 'owner/repo', got: %s", sourceFlag)
	}
	return sourceFlag, u.logf("Using custom GitHub source: %s\n", sourceFlag)
}

func (u *updater) newUpdater() (*selfupdate.Updater, error) {
	ghSource, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, command.Executionf("creating GitHub source: %w", err)
	}

	up, err := selfupdate.NewUpdater(selfupdate.Config{
		Source: ghSource,
	})
	if err != nil {
		return nil, command.Executionf("initializing updater: %w", err)
	}
	return up, u.logf("Updater initialized.\n")
}

func (u *updater) detectLatestVersion(ctx context.Context, up *selfupdate.Updater, repoSlug string) (*selfupdate.Release, bool, error) {
	if err := u.logf("Checking for latest version...\n"); err != nil {
		return nil, false, err
	}

	latestRelease, found, err := up.DetectLatest(ctx, selfupdate.ParseSlug(repoSlug))
	if err != nil {
		return nil, false, command.Executionf("detecting latest version: %w", err)
	}
	return latestRelease, found, nil
}

// confirmUpdate returns true if the user confirms or --yes is specified.
func (u *updater) confirmUpdate(autoConfirm bool) (bool, error) {
	if autoConfirm {
		return true, nil
	}

	if err := u.env.Printf("Do you want to update? (y/N): "); err != nil {
		return false, err
	}
	input, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading user input: %w", err)
	}
	return strings.TrimSpace(strings.ToLower(input)) == "y", nil
}

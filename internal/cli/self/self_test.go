package self

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightconcept/zk/internal/core/app"
	"github.com/nightconcept/zk/internal/core/command"
)

func newTestUpdater(verbose bool) (*updater, *bytes.Buffer) {
	var out bytes.Buffer
	return &updater{env: command.NewEnvironment(&out), verbose: verbose}, &out
}

func TestParseVersion(t *testing.T) {
	u, out := newTestUpdater(true)

	v, err := u.parseVersion("v1.4.2")
	require.NoError(t, err)
	assert.Equal(t, "1.4.2", v.String())
	assert.Contains(t, out.String(), "Parsed current semantic version: 1.4.2")

	v, err = u.parseVersion("0.3.0")
	require.NoError(t, err)
	assert.Equal(t, "0.3.0", v.String())

	_, err = u.parseVersion("dev")
	require.Error(t, err)
	assert.Equal(t, command.KindExecution, command.KindOf(err))
}

func TestRepoSlug(t *testing.T) {
	u, out := newTestUpdater(false)

	slug, err := u.repoSlug("")
	require.NoError(t, err)
	assert.Equal(t, defaultRepoSlug, slug)

	slug, err = u.repoSlug("someone/fork")
	require.NoError(t, err)
	assert.Equal(t, "someone/fork", slug)

	for _, bad := range []string{"noslash", "a/b/c", "/repo", "owner/"} {
		_, err = u.repoSlug(bad)
		assert.Error(t, err, "source %q", bad)
	}
	assert.Empty(t, out.String(), "non-verbose runs print nothing")
}

func TestConfirmUpdate(t *testing.T) {
	original := stdin
	defer func() { stdin = original }()

	u, out := newTestUpdater(false)

	ok, err := u.confirmUpdate(true)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, out.String())

	stdin = strings.NewReader("Y\n")
	ok, err = u.confirmUpdate(false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "(y/N)")

	stdin = strings.NewReader("no\n")
	ok, err = u.confirmUpdate(false)
	require.NoError(t, err)
	assert.False(t, ok)

	stdin = strings.NewReader("")
	ok, err = u.confirmUpdate(false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSelfCommand_RequiresSubcommand(t *testing.T) {
	a := app.New([]string{"zk", "self"}, &bytes.Buffer{})
	require.NoError(t, a.AddCommand(SelfCmd))

	err := a.Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, command.KindExecution, command.KindOf(err))
	assert.Contains(t, err.Error(), "zk self update")
}

func TestSelfCommand_UpdateRejectsDevVersion(t *testing.T) {
	a := app.New([]string{"zk", "self", "update", "--check"}, &bytes.Buffer{}, app.WithVersion("dev"))
	require.NoError(t, a.AddCommand(SelfCmd))

	err := a.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"dev"`)
}

package newnote

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightconcept/zk/internal/core/app"
	"github.com/nightconcept/zk/internal/core/command"
	"github.com/nightconcept/zk/internal/core/config"
	"github.com/nightconcept/zk/internal/core/note"
)

// setupNewTestEnvironment writes a configuration pointing at a fresh notes
// directory and pins the clock. Returns the config path and the notes directory.
func setupNewTestEnvironment(t *testing.T) (string, string) {
	t.Helper()
	tempDir := t.TempDir()
	notesDir := filepath.Join(tempDir, "notes")
	cfgPath := filepath.Join(tempDir, "config.yaml")
	require.NoError(t, config.Write(cfgPath, &config.Config{WorkingDir: notesDir}))

	original := now
	now = func() time.Time { return time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = original })

	return cfgPath, notesDir
}

func runNewCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a := app.New(append([]string{"zk"}, args...), &out)
	require.NoError(t, a.AddCommand(NewCmd))
	err := a.Run(context.Background())
	return out.String(), err
}

func TestNewCommand_CreatesNote(t *testing.T) {
	cfgPath, notesDir := setupNewTestEnvironment(t)

	output, err := runNewCommand(t, "-c", cfgPath, "new", "-t", "method", "--tag", "Method", "--tag", " go ", "Atomic", "notes")

	require.NoError(t, err)
	expectedPath := filepath.Join(notesDir, "20261019080000-atomic-notes.md")
	assert.Contains(t, output, "Created note 20261019080000")
	assert.Contains(t, output, expectedPath)

	data, err := os.ReadFile(expectedPath)
	require.NoError(t, err)
	n, err := note.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "Atomic notes", n.Title)
	assert.Equal(t, []string{"method", "go"}, n.Tags)
	assert.Equal(t, "# Atomic notes\n", n.Body)
}

func TestNewCommand_SameSecondGetsNextID(t *testing.T) {
	cfgPath, notesDir := setupNewTestEnvironment(t)

	_, err := runNewCommand(t, "-c", cfgPath, "new", "first")
	require.NoError(t, err)
	output, err := runNewCommand(t, "-c", cfgPath, "new", "second")
	require.NoError(t, err)

	assert.Contains(t, output, "20261019080001")
	entries, err := os.ReadDir(notesDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestNewCommand_RequiresTitle(t *testing.T) {
	cfgPath, _ := setupNewTestEnvironment(t)

	_, err := runNewCommand(t, "-c", cfgPath, "new", "  ")

	require.Error(t, err)
	assert.Equal(t, command.KindExecution, command.KindOf(err))
	assert.Contains(t, err.Error(), "title is required")
}

func TestNewCommand_MissingConfig(t *testing.T) {
	setupNewTestEnvironment(t)

	_, err := runNewCommand(t, "-c", filepath.Join(t.TempDir(), "none.yaml"), "new", "orphan")

	require.Error(t, err)
	assert.Equal(t, command.KindExecution, command.KindOf(err))
	assert.True(t, strings.Contains(err.Error(), "zk init"))
}

func TestNormalizeTags(t *testing.T) {
	assert.Nil(t, normalizeTags(nil))
	assert.Equal(t, []string{"a", "B"}, normalizeTags([]string{" a", "", "B", "b", "A "}))
}

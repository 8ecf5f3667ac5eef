package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightconcept/zk/internal/core/config"
)

func TestParse_WorkingDirWithPath(t *testing.T) {
	t.Parallel()
	cfg, err := config.Parse("\nworking_dir: /home/user/notes\n")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/notes", cfg.WorkingDir)
}

func TestParse_DoesNotValidatePaths(t *testing.T) {
	t.Parallel()
	cfg, err := config.Parse("working_dir: /")
	require.NoError(t, err)
	assert.Equal(t, "/", cfg.WorkingDir)
}

func TestParse_FieldMissing(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"absent":        "abs: a",
		"sequence":      "working_dir: [1, 2]",
		"mapping":       "working_dir:\n  path: /notes\n",
		"integer":       "working_dir: 5",
		"null":          "working_dir:",
		"empty input":   "",
		"not a mapping": "- working_dir",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse(input)
			var missing *config.FieldMissingError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, "working_dir", missing.Field)
		})
	}
}

func TestParse_InvalidYaml(t *testing.T) {
	t.Parallel()
	_, err := config.Parse("key: [1, 2]]\n")
	var formatErr *config.FormatError
	assert.ErrorAs(t, err, &formatErr)
}

func TestParse_MultiDocument(t *testing.T) {
	t.Parallel()
	_, err := config.Parse("a: b\n---\nworking_dir: a\n")
	assert.ErrorIs(t, err, config.ErrMultiDocument)
}

func TestWriteThenLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", config.FileName)

	require.NoError(t, config.Write(path, &config.Config{WorkingDir: "/srv/notes"}))
	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/srv/notes", cfg.WorkingDir)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_WrapsParseErrors(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("other: x\n"), 0o644))

	_, err := config.Load(path)

	var missing *config.FieldMissingError
	assert.ErrorAs(t, err, &missing)
	assert.Contains(t, err.Error(), path)
}

func TestPath(t *testing.T) {
	t.Run("explicit wins", func(t *testing.T) {
		t.Setenv(config.EnvVar, "/from/env.yaml")
		p, err := config.Path("/explicit.yaml")
		require.NoError(t, err)
		assert.Equal(t, "/explicit.yaml", p)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv(config.EnvVar, "/from/env.yaml")
		p, err := config.Path("")
		require.NoError(t, err)
		assert.Equal(t, "/from/env.yaml", p)
	})

	t.Run("user config dir", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(config.EnvVar, "")
		t.Setenv("XDG_CONFIG_HOME", dir)
		t.Setenv("HOME", dir)
		t.Setenv("AppData", dir)
		p, err := config.Path("")
		require.NoError(t, err)
		assert.Equal(t, config.FileName, filepath.Base(p))
		assert.Equal(t, "zk", filepath.Base(filepath.Dir(p)))
	})
}

func TestLoadFrom(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), config.FileName)

	_, err := config.LoadFrom(path)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "zk init")

	require.NoError(t, config.Write(path, &config.Config{WorkingDir: "/notes"}))
	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "/notes", cfg.WorkingDir)
}

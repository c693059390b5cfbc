//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dependactor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	t.Run("should fill every default", func(t *testing.T) {
		t.Parallel()

		// when
		settings := entities.DefaultSettings()

		// then
		assert.Equal(t, entities.DefaultInputPath, settings.Input)
		assert.Equal(t, ".", settings.Repository)
		assert.Equal(t, "origin", settings.Remote)
		assert.Equal(t, "pullrequest", settings.PullRequestCommand)
		assert.Equal(t, entities.VCSBackendCLI, settings.VCS)
		assert.Empty(t, settings.Report)
		require.NoError(t, settings.Validate())
	})
}

func TestNewSettings(t *testing.T) {
	t.Run("should expand environment variables and keep unset fields at their defaults", func(t *testing.T) {
		// given
		t.Setenv("DEPENDACTOR_TEST_REMOTE", "upstream")
		path := writeConfig(t, "remote: ${DEPENDACTOR_TEST_REMOTE}\nvcs: gogit\nupdaters:\n  command:\n    lockfile: make lock\n")

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "upstream", settings.Remote)
		assert.Equal(t, entities.VCSBackendGoGit, settings.VCS)
		assert.Equal(t, "make lock", settings.Updaters.Command.Lockfile)
		assert.Equal(t, entities.DefaultInputPath, settings.Input)
	})

	t.Run("should fall back to the default for an unset variable", func(t *testing.T) {
		// given
		path := writeConfig(t, "remote: ${DEPENDACTOR_TEST_UNSET_VARIABLE}\n")

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "origin", settings.Remote)
	})

	t.Run("should reject an unknown vcs backend", func(t *testing.T) {
		// given
		path := writeConfig(t, "vcs: svn\n")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "svn")
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		// when
		_, err := entities.NewSettings(filepath.Join(t.TempDir(), "missing.yaml"))

		// then
		require.Error(t, err)
	})

	t.Run("should fail on invalid yaml", func(t *testing.T) {
		// given
		path := writeConfig(t, "remote: [unterminated\n")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
	})
}

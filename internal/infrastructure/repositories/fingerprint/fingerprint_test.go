//go:build unit

package fingerprint_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/dependactor/internal/infrastructure/repositories/fingerprint"
)

func TestBytes(t *testing.T) {
	t.Parallel()

	t.Run("should return the xxhash64 as 16 hex digits", func(t *testing.T) {
		t.Parallel()

		// when
		sum := fingerprint.Bytes(nil)

		// then
		assert.Equal(t, "ef46db3751d8e999", sum)
	})

	t.Run("should change with the content", func(t *testing.T) {
		t.Parallel()

		// when
		first := fingerprint.Bytes([]byte("rails (7.0.0)"))
		second := fingerprint.Bytes([]byte("rails (7.0.1)"))

		// then
		assert.Len(t, first, 16)
		assert.NotEqual(t, first, second)
	})
}

func TestFile(t *testing.T) {
	t.Parallel()

	t.Run("should hash the file content", func(t *testing.T) {
		t.Parallel()

		// given
		content := []byte("GEM\n  specs:\n    rails (7.0.1)\n")
		path := filepath.Join(t.TempDir(), "Gemfile.lock")
		require.NoError(t, os.WriteFile(path, content, 0o600))

		// when
		sum, err := fingerprint.File(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, fingerprint.Bytes(content), sum)
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := fingerprint.File(filepath.Join(t.TempDir(), "missing.lock"))

		// then
		require.Error(t, err)
	})
}

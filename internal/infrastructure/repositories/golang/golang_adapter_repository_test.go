//go:build unit

package golang_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
	"github.com/rios0rios0/dependactor/internal/infrastructure/repositories/golang"
	doubles "github.com/rios0rios0/dependactor/test/infrastructure/repositorydoubles"
)

const goMod = `module example.com/app

go 1.22

require (
	github.com/sirupsen/logrus v1.9.0
	golang.org/x/mod v0.20.0
)
`

const goSum = `github.com/sirupsen/logrus v1.9.0 h1:trlNQbNUG3OdDrDil03MCb1H2o9nJ1x4/5LYw7byDE0=
github.com/sirupsen/logrus v1.9.0/go.mod h1:naHLuLoDiP4jHNo9R0sCBMtWGeIprob74mVsIT4qYEQ=
golang.org/x/mod v0.20.0 h1:utOm6MM3R3dnawAiJgn0y+xvuYRsm1RKM/4giyfDgV0=
golang.org/x/mod v0.20.0/go.mod h1:hTbmBsO62+eylJbnUtE2MGJUyE7QWk4xUqPFrRgJ+7c=
golang.org/x/sys v0.1.0/go.mod h1:oPkhp1MJrh7nUepCBck5+mAzfO9JrbApNNgaTdGDITg=
golang.org/x/sys v0.5.0/go.mod h1:oPkhp1MJrh7nUepCBck5+mAzfO9JrbApNNgaTdGDITg=
`

func writeModule(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte(goMod), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.sum"), []byte(goSum), 0o600))
	return dir
}

func TestAdapterRepositorySupports(t *testing.T) {
	t.Parallel()

	t.Run("should handle go.mod and go.sum only", func(t *testing.T) {
		t.Parallel()

		// given
		adapter := golang.New(&doubles.SpyRunner{}, ".")

		// then
		assert.True(t, adapter.Supports("go.mod"))
		assert.True(t, adapter.Supports("tools/go.sum"))
		assert.False(t, adapter.Supports("package.json"))
	})
}

func TestAdapterRepositoryUpdateManifest(t *testing.T) {
	t.Parallel()

	t.Run("should rewrite the requirement with a v prefix", func(t *testing.T) {
		t.Parallel()

		// given
		dir := writeModule(t)
		adapter := golang.New(&doubles.SpyRunner{}, dir)

		// when
		err := adapter.UpdateManifest(context.Background(), "go.mod", "golang.org/x/mod", "0.34.0")

		// then
		require.NoError(t, err)
		data, readErr := os.ReadFile(filepath.Join(dir, "go.mod"))
		require.NoError(t, readErr)
		assert.Contains(t, string(data), "golang.org/x/mod v0.34.0")
		assert.NotContains(t, string(data), "v0.20.0")
		assert.Contains(t, string(data), "github.com/sirupsen/logrus v1.9.0")
	})

	t.Run("should reject an invalid version", func(t *testing.T) {
		t.Parallel()

		// given
		dir := writeModule(t)
		adapter := golang.New(&doubles.SpyRunner{}, dir)

		// when
		err := adapter.UpdateManifest(context.Background(), "go.mod", "golang.org/x/mod", "not a version")

		// then
		require.Error(t, err)
		data, _ := os.ReadFile(filepath.Join(dir, "go.mod"))
		assert.Equal(t, goMod, string(data))
	})

	t.Run("should refuse files other than go.mod", func(t *testing.T) {
		t.Parallel()

		// given
		adapter := golang.New(&doubles.SpyRunner{}, t.TempDir())

		// when
		err := adapter.UpdateManifest(context.Background(), "go.sum", "golang.org/x/mod", "v0.34.0")

		// then
		require.ErrorIs(t, err, entities.ErrUnsupportedFile)
	})
}

func TestAdapterRepositoryUpdateLockfile(t *testing.T) {
	t.Parallel()

	t.Run("should upgrade and tidy the module owning go.sum", func(t *testing.T) {
		t.Parallel()

		// given
		dir := writeModule(t)
		runner := &doubles.SpyRunner{}
		adapter := golang.New(runner, dir)

		// when
		snapshot, err := adapter.UpdateLockfile(context.Background(), "go.sum")

		// then
		require.NoError(t, err)
		assert.Equal(t, []doubles.RunCall{
			{Dir: dir, Name: "go", Args: []string{"get", "-u", "./..."}},
			{Dir: dir, Name: "go", Args: []string{"mod", "tidy"}},
		}, runner.Runs)
		assert.Equal(t, "go.sum", snapshot.Path)
		assert.Equal(t, goSum, string(snapshot.Content))
	})

	t.Run("should stop when go get fails", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &doubles.SpyRunner{Errs: []error{&entities.CommandError{Command: []string{"go", "get"}, ExitCode: 1}}}
		adapter := golang.New(runner, writeModule(t))

		// when
		_, err := adapter.UpdateLockfile(context.Background(), "go.sum")

		// then
		var cmdErr *entities.CommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.Len(t, runner.Runs, 1)
	})
}

func TestAdapterRepositoryCollectDependencies(t *testing.T) {
	t.Parallel()

	t.Run("should map every module to its newest recorded version", func(t *testing.T) {
		t.Parallel()

		// given
		adapter := golang.New(&doubles.SpyRunner{}, ".")
		snapshot := entities.LockfileSnapshot{Path: "go.sum", Content: []byte(goSum)}

		// when
		dependencies, err := adapter.CollectDependencies(context.Background(), snapshot)

		// then
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"github.com/sirupsen/logrus": "v1.9.0",
			"golang.org/x/mod":           "v0.20.0",
			"golang.org/x/sys":           "v0.5.0",
		}, dependencies)
	})
}

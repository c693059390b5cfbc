//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
	"github.com/rios0rios0/dependactor/test/domain/entitybuilders"
)

func TestUpdateTaskValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		task *entities.UpdateTask
	}{
		{
			name: "lockfile without data",
			task: &entities.UpdateTask{Lockfiles: map[string]*entities.LockfileEntry{"Gemfile.lock": nil}},
		},
		{
			name: "manifest without data",
			task: &entities.UpdateTask{Manifests: map[string]*entities.ManifestEntry{"package.json": nil}},
		},
		{
			name: "lockfile with empty path",
			task: entitybuilders.NewUpdateTaskBuilder().WithLockfile("", nil).BuildTask(),
		},
		{
			name: "dependency without installed version",
			task: entitybuilders.NewUpdateTaskBuilder().
				WithManifestDependency("package.json", "lodash",
					entitybuilders.NewDependencyInfoBuilder().WithInstalled("").BuildDependencyInfo()).
				BuildTask(),
		},
		{
			name: "dependency without available versions",
			task: entitybuilders.NewUpdateTaskBuilder().
				WithManifestDependency("package.json", "lodash",
					entitybuilders.NewDependencyInfoBuilder().WithAvailable().BuildDependencyInfo()).
				BuildTask(),
		},
		{
			name: "dependency whose newest version has no name",
			task: entitybuilders.NewUpdateTaskBuilder().
				WithManifestDependency("package.json", "lodash",
					entitybuilders.NewDependencyInfoBuilder().WithAvailable("1.0.0", "").BuildDependencyInfo()).
				BuildTask(),
		},
	}

	for _, tt := range tests {
		t.Run("should reject a task with "+tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			err := tt.task.Validate()

			// then
			require.ErrorIs(t, err, entities.ErrMalformedTask)
		})
	}

	t.Run("should accept a well formed task", func(t *testing.T) {
		t.Parallel()

		// given
		task := entitybuilders.NewUpdateTaskBuilder().
			WithLockfile("Gemfile.lock", map[string]any{"rails": "7.0.0"}).
			WithManifestDependency("package.json", "lodash", entitybuilders.NewDependencyInfoBuilder().BuildDependencyInfo()).
			BuildTask()

		// when
		err := task.Validate()

		// then
		require.NoError(t, err)
	})
}

func TestDependencyInfoLatest(t *testing.T) {
	t.Parallel()

	t.Run("should return the last available version", func(t *testing.T) {
		t.Parallel()

		// given
		info := entitybuilders.NewDependencyInfoBuilder().WithAvailable("4.0.0", "4.17.21").BuildDependencyInfo()

		// when
		latest, ok := info.Latest()

		// then
		assert.True(t, ok)
		assert.Equal(t, "4.17.21", latest.Name)
	})

	t.Run("should report when nothing is available", func(t *testing.T) {
		t.Parallel()

		// given
		info := entitybuilders.NewDependencyInfoBuilder().WithAvailable().BuildDependencyInfo()

		// when
		_, ok := info.Latest()

		// then
		assert.False(t, ok)
	})
}

func TestManifestEntryApplyDependencyUpdate(t *testing.T) {
	t.Parallel()

	t.Run("should merge updates without dropping earlier ones", func(t *testing.T) {
		t.Parallel()

		// given
		task := entitybuilders.NewUpdateTaskBuilder().
			WithManifestDependency("package.json", "lodash",
				entitybuilders.NewDependencyInfoBuilder().WithSource("npm").BuildDependencyInfo()).
			WithManifestDependency("package.json", "react", entitybuilders.NewDependencyInfoBuilder().BuildDependencyInfo()).
			BuildTask()
		entry := task.Manifests["package.json"]

		// when
		entry.ApplyDependencyUpdate("lodash", "4.17.21")
		updated := entry.ApplyDependencyUpdate("react", "18.2.0")

		// then
		assert.Equal(t, entities.DependencyInfo{
			Source:     "registry",
			Installed:  entities.Version{Name: "18.2.0"},
			Constraint: "18.2.0",
		}, updated)
		assert.Len(t, entry.Updated.Dependencies, 2)
		assert.Equal(t, "npm", entry.Updated.Dependencies["lodash"].Source)
		assert.Equal(t, "4.17.21", entry.Updated.Dependencies["lodash"].Installed.Name)
		assert.Equal(t, "1.0.0", entry.Current.Dependencies["lodash"].Installed.Name)
	})
}

func TestLockfileEntryApplyLockfileUpdate(t *testing.T) {
	t.Parallel()

	t.Run("should replace the updated state and keep the current one", func(t *testing.T) {
		t.Parallel()

		// given
		entry := &entities.LockfileEntry{Current: map[string]any{"rails": "7.0.0"}}

		// when
		entry.ApplyLockfileUpdate(map[string]any{"rails": "7.0.1"}, "abc123")

		// then
		assert.Equal(t, map[string]any{"rails": "7.0.0"}, entry.Current)
		assert.Equal(t, "abc123", entry.Updated.Fingerprint)
		assert.Equal(t, map[string]any{"rails": "7.0.1"}, entry.Updated.Dependencies)
	})
}

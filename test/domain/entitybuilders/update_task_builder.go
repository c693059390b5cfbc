//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"maps"
	"slices"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
)

// UpdateTaskBuilder helps create task descriptions with a fluent interface.
type UpdateTaskBuilder struct {
	*testkit.BaseBuilder
	lockfiles    map[string]map[string]any
	dependencies []manifestDependency
}

type manifestDependency struct {
	manifest string
	name     string
	info     entities.DependencyInfo
}

// NewUpdateTaskBuilder creates a new builder for an empty task.
func NewUpdateTaskBuilder() *UpdateTaskBuilder {
	return &UpdateTaskBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		lockfiles:   make(map[string]map[string]any),
	}
}

// WithLockfile adds a lockfile with the given current state.
func (b *UpdateTaskBuilder) WithLockfile(path string, current map[string]any) *UpdateTaskBuilder {
	if current == nil {
		current = map[string]any{}
	}
	b.lockfiles[path] = current
	return b
}

// WithManifestDependency adds a dependency to a manifest, creating the manifest if needed.
func (b *UpdateTaskBuilder) WithManifestDependency(
	manifest, name string,
	info entities.DependencyInfo,
) *UpdateTaskBuilder {
	b.dependencies = append(b.dependencies, manifestDependency{manifest: manifest, name: name, info: info})
	return b
}

// Build creates the task (satisfies testkit.Builder interface).
func (b *UpdateTaskBuilder) Build() interface{} {
	return b.BuildTask()
}

// BuildTask creates the task with a concrete return type.
func (b *UpdateTaskBuilder) BuildTask() *entities.UpdateTask {
	task := &entities.UpdateTask{
		Lockfiles: make(map[string]*entities.LockfileEntry),
		Manifests: make(map[string]*entities.ManifestEntry),
	}

	for path, current := range b.lockfiles {
		task.Lockfiles[path] = &entities.LockfileEntry{Current: maps.Clone(current)}
	}

	for _, dep := range b.dependencies {
		entry, ok := task.Manifests[dep.manifest]
		if !ok {
			entry = &entities.ManifestEntry{
				Current: entities.ManifestState{Dependencies: make(map[string]entities.DependencyInfo)},
			}
			task.Manifests[dep.manifest] = entry
		}
		entry.Current.Dependencies[dep.name] = dep.info
	}

	return task
}

// Reset clears the builder state, allowing it to be reused.
func (b *UpdateTaskBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.lockfiles = make(map[string]map[string]any)
	b.dependencies = nil
	return b
}

// Clone creates a deep copy of the UpdateTaskBuilder.
func (b *UpdateTaskBuilder) Clone() testkit.Builder {
	return &UpdateTaskBuilder{
		BaseBuilder:  b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		lockfiles:    maps.Clone(b.lockfiles),
		dependencies: slices.Clone(b.dependencies),
	}
}

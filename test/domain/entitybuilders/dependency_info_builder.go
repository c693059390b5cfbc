//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"slices"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
)

// DependencyInfoBuilder helps create manifest dependencies with a fluent interface.
type DependencyInfoBuilder struct {
	*testkit.BaseBuilder
	source     string
	installed  string
	available  []string
	constraint string
}

// NewDependencyInfoBuilder creates a new dependency builder with sensible defaults.
func NewDependencyInfoBuilder() *DependencyInfoBuilder {
	return &DependencyInfoBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		source:      "registry",
		installed:   "1.0.0",
		available:   []string{"1.0.0", "2.0.0"},
		constraint:  "^1.0.0",
	}
}

// WithSource sets the dependency source.
func (b *DependencyInfoBuilder) WithSource(source string) *DependencyInfoBuilder {
	b.source = source
	return b
}

// WithInstalled sets the installed version.
func (b *DependencyInfoBuilder) WithInstalled(version string) *DependencyInfoBuilder {
	b.installed = version
	return b
}

// WithAvailable sets the available versions, oldest first.
func (b *DependencyInfoBuilder) WithAvailable(versions ...string) *DependencyInfoBuilder {
	b.available = versions
	return b
}

// WithConstraint sets the version constraint.
func (b *DependencyInfoBuilder) WithConstraint(constraint string) *DependencyInfoBuilder {
	b.constraint = constraint
	return b
}

// Build creates the dependency (satisfies testkit.Builder interface).
func (b *DependencyInfoBuilder) Build() interface{} {
	return b.BuildDependencyInfo()
}

// BuildDependencyInfo creates the dependency with a concrete return type.
func (b *DependencyInfoBuilder) BuildDependencyInfo() entities.DependencyInfo {
	available := make([]entities.Version, 0, len(b.available))
	for _, name := range b.available {
		available = append(available, entities.Version{Name: name})
	}
	return entities.DependencyInfo{
		Source:     b.source,
		Installed:  entities.Version{Name: b.installed},
		Available:  available,
		Constraint: b.constraint,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *DependencyInfoBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.source = "registry"
	b.installed = "1.0.0"
	b.available = []string{"1.0.0", "2.0.0"}
	b.constraint = "^1.0.0"
	return b
}

// Clone creates a deep copy of the DependencyInfoBuilder.
func (b *DependencyInfoBuilder) Clone() testkit.Builder {
	return &DependencyInfoBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		source:      b.source,
		installed:   b.installed,
		available:   slices.Clone(b.available),
		constraint:  b.constraint,
	}
}

package entities

import (
	"fmt"
	"maps"
	"slices"
)

// UpdateTask describes everything a job has to update. Only the Updated
// fields change while the job runs.
type UpdateTask struct {
	Lockfiles map[string]*LockfileEntry `json:"lockfiles,omitempty" yaml:"lockfiles"`
	Manifests map[string]*ManifestEntry `json:"manifests,omitempty" yaml:"manifests"`
}

// LockfileEntry is updated as a whole.
type LockfileEntry struct {
	Current map[string]any `json:"current" yaml:"current"`
	Updated LockfileState  `json:"updated" yaml:"updated"`
}

// LockfileState is the realized state of a lockfile after an update.
type LockfileState struct {
	Dependencies map[string]any `json:"dependencies,omitempty" yaml:"dependencies"`
	Fingerprint  string         `json:"fingerprint,omitempty"  yaml:"fingerprint"`
}

// ManifestEntry is updated one dependency at a time.
type ManifestEntry struct {
	Current ManifestState `json:"current" yaml:"current"`
	Updated ManifestState `json:"updated" yaml:"updated"`
}

// ManifestState holds the dependencies declared in a manifest.
type ManifestState struct {
	Dependencies map[string]DependencyInfo `json:"dependencies,omitempty" yaml:"dependencies"`
}

// DependencyInfo describes one manifest dependency. Available is ordered
// oldest to newest.
type DependencyInfo struct {
	Source     string    `json:"source"              yaml:"source"`
	Installed  Version   `json:"installed"           yaml:"installed"`
	Available  []Version `json:"available,omitempty" yaml:"available"`
	Constraint string    `json:"constraint"          yaml:"constraint"`
}

// Version is a named release of a dependency.
type Version struct {
	Name string `json:"name" yaml:"name"`
}

// Latest returns the newest available version.
func (d DependencyInfo) Latest() (Version, bool) {
	if len(d.Available) == 0 {
		return Version{}, false
	}
	return d.Available[len(d.Available)-1], true
}

// Validate checks the task shape before any unit runs.
func (t *UpdateTask) Validate() error {
	if t == nil {
		return fmt.Errorf("%w: task is empty", ErrMalformedTask)
	}

	for path, entry := range t.Lockfiles {
		if path == "" {
			return fmt.Errorf("%w: lockfile with empty path", ErrMalformedTask)
		}
		if entry == nil {
			return fmt.Errorf("%w: lockfile %q has no data", ErrMalformedTask, path)
		}
	}

	for path, entry := range t.Manifests {
		if path == "" {
			return fmt.Errorf("%w: manifest with empty path", ErrMalformedTask)
		}
		if entry == nil {
			return fmt.Errorf("%w: manifest %q has no data", ErrMalformedTask, path)
		}
		for name, dep := range entry.Current.Dependencies {
			if name == "" {
				return fmt.Errorf("%w: manifest %q has a dependency without a name", ErrMalformedTask, path)
			}
			if dep.Installed.Name == "" {
				return fmt.Errorf("%w: %s in %q has no installed version", ErrMalformedTask, name, path)
			}
			latest, ok := dep.Latest()
			if !ok || latest.Name == "" {
				return fmt.Errorf("%w: %s in %q has no available version", ErrMalformedTask, name, path)
			}
		}
	}

	return nil
}

// LockfilePaths returns the lockfile paths in lexical order.
func (t *UpdateTask) LockfilePaths() []string {
	return slices.Sorted(maps.Keys(t.Lockfiles))
}

// ManifestPaths returns the manifest paths in lexical order.
func (t *UpdateTask) ManifestPaths() []string {
	return slices.Sorted(maps.Keys(t.Manifests))
}

// DependencyNames returns the current dependency names of a manifest in lexical order.
func (m *ManifestEntry) DependencyNames() []string {
	return slices.Sorted(maps.Keys(m.Current.Dependencies))
}

// ApplyLockfileUpdate records the realized state of a lockfile.
func (e *LockfileEntry) ApplyLockfileUpdate(dependencies map[string]any, fingerprint string) {
	e.Updated = LockfileState{
		Dependencies: dependencies,
		Fingerprint:  fingerprint,
	}
}

// ApplyDependencyUpdate merges the new version of one dependency into the
// manifest's updated state and returns the recorded info.
func (m *ManifestEntry) ApplyDependencyUpdate(name, version string) DependencyInfo {
	updated := DependencyInfo{
		Source:     m.Current.Dependencies[name].Source,
		Installed:  Version{Name: version},
		Constraint: version,
	}
	if m.Updated.Dependencies == nil {
		m.Updated.Dependencies = make(map[string]DependencyInfo)
	}
	m.Updated.Dependencies[name] = updated
	return updated
}

package entities

import "fmt"

// UnitKind distinguishes lockfile units from manifest dependency units.
type UnitKind string

const (
	UnitLockfile UnitKind = "lockfile"
	UnitManifest UnitKind = "manifest"
)

const (
	lockfileBranchPrefix   = "update-lockfile-"
	dependencyBranchPrefix = "update-"
)

// UpdateUnit is the smallest piece of work that gets its own branch, commit and pull request.
type UpdateUnit struct {
	Kind       UnitKind
	Path       string
	Dependency string // empty for lockfiles
	Branch     string
}

func (u UpdateUnit) String() string {
	if u.Kind == UnitLockfile {
		return fmt.Sprintf("lockfile %s", u.Path)
	}
	return fmt.Sprintf("%s in %s", u.Dependency, u.Path)
}

// LockfileBranchName returns the branch used for a lockfile update.
func LockfileBranchName(path, jobID string) string {
	return lockfileBranchPrefix + path + "-" + jobID
}

// DependencyBranchName returns the branch used for a manifest dependency update.
func DependencyBranchName(dependency, jobID string) string {
	return dependencyBranchPrefix + dependency + "-" + jobID
}

// ScopedDependencyBranchName returns the branch used for a dependency whose
// name appears in more than one manifest.
func ScopedDependencyBranchName(manifest, dependency, jobID string) string {
	return dependencyBranchPrefix + manifest + "-" + dependency + "-" + jobID
}

// PlanUnits lists the units of a task in execution order: lockfiles first,
// then every dependency of every manifest, each group in lexical order.
// Branch names are checked for uniqueness before anything runs.
func PlanUnits(task *UpdateTask, jobID string) ([]UpdateUnit, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	units := make([]UpdateUnit, 0, len(task.Lockfiles))
	for _, path := range task.LockfilePaths() {
		units = append(units, UpdateUnit{
			Kind:   UnitLockfile,
			Path:   path,
			Branch: LockfileBranchName(path, jobID),
		})
	}

	shared := sharedDependencyNames(task)
	for _, path := range task.ManifestPaths() {
		for _, name := range task.Manifests[path].DependencyNames() {
			branch := DependencyBranchName(name, jobID)
			if shared[name] {
				branch = ScopedDependencyBranchName(path, name, jobID)
			}
			units = append(units, UpdateUnit{
				Kind:       UnitManifest,
				Path:       path,
				Dependency: name,
				Branch:     branch,
			})
		}
	}

	seen := make(map[string]UpdateUnit, len(units))
	for _, unit := range units {
		if other, ok := seen[unit.Branch]; ok {
			return nil, fmt.Errorf("%w: %s and %s both map to %q", ErrBranchCollision, other, unit, unit.Branch)
		}
		seen[unit.Branch] = unit
	}

	return units, nil
}

// sharedDependencyNames returns the dependency names declared by more than one manifest.
func sharedDependencyNames(task *UpdateTask) map[string]bool {
	counts := make(map[string]int)
	for _, entry := range task.Manifests {
		for name := range entry.Current.Dependencies {
			counts[name]++
		}
	}

	shared := make(map[string]bool)
	for name, count := range counts {
		if count > 1 {
			shared[name] = true
		}
	}
	return shared
}

// CommitMessage returns the commit message for a unit. Manifest units need
// the installed and target versions.
func CommitMessage(unit UpdateUnit, installed, target string) string {
	if unit.Kind == UnitLockfile {
		return "Update " + unit.Path
	}
	return fmt.Sprintf("Update %s from %s to %s", unit.Dependency, installed, target)
}

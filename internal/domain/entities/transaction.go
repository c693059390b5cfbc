package entities

// TransactionResult is what a finished unit leaves behind.
type TransactionResult struct {
	Unit          UpdateUnit
	CommitMessage string
	Pushed        bool
	Payload       *UpdateTask
}

// NewLockfilePayload builds the pull request payload of a lockfile unit.
// It only carries that one lockfile.
func NewLockfilePayload(path string, entry *LockfileEntry) *UpdateTask {
	snapshot := *entry
	return &UpdateTask{
		Lockfiles: map[string]*LockfileEntry{path: &snapshot},
	}
}

// NewManifestPayload builds the pull request payload of a manifest dependency
// unit. It only carries that one dependency, never the whole manifest.
func NewManifestPayload(path, dependency string, current, updated DependencyInfo) *UpdateTask {
	return &UpdateTask{
		Manifests: map[string]*ManifestEntry{
			path: {
				Current: ManifestState{Dependencies: map[string]DependencyInfo{dependency: current}},
				Updated: ManifestState{Dependencies: map[string]DependencyInfo{dependency: updated}},
			},
		},
	}
}

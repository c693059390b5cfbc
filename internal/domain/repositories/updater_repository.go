package repositories

import (
	"context"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
)

// UpdaterRepository writes new dependency versions to disk.
type UpdaterRepository interface {
	// UpdateLockfile updates every dependency of a lockfile at once and returns
	// the resulting snapshot for inspection.
	UpdateLockfile(ctx context.Context, path string) (entities.LockfileSnapshot, error)

	// UpdateManifest sets a single dependency of a manifest to the given version.
	UpdateManifest(ctx context.Context, path, dependency, version string) error
}

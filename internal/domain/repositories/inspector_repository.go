package repositories

import (
	"context"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
)

// InspectorRepository reads back what an update actually produced.
type InspectorRepository interface {
	// CollectDependencies extracts the realized dependency set of an updated lockfile.
	CollectDependencies(ctx context.Context, snapshot entities.LockfileSnapshot) (map[string]any, error)

	// Fingerprint returns a content identity for the file at path.
	Fingerprint(ctx context.Context, path string) (string, error)
}

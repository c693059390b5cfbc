package repositories

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
	domainRepos "github.com/rios0rios0/dependactor/internal/domain/repositories"
)

// AdapterFactory builds an ecosystem adapter for the configured working copy.
type AdapterFactory func(settings *entities.Settings) domainRepos.AdapterRepository

// AdapterRegistry manages the ecosystem adapters. Registration order is the
// lookup order, so catch-all adapters must be registered last.
type AdapterRegistry struct {
	factories []AdapterFactory
}

// NewAdapterRegistry creates an empty adapter registry.
func NewAdapterRegistry() *AdapterRegistry {
	return &AdapterRegistry{}
}

// Register appends an adapter factory.
func (r *AdapterRegistry) Register(factory AdapterFactory) {
	r.factories = append(r.factories, factory)
}

// Resolve instantiates every adapter for the given settings.
func (r *AdapterRegistry) Resolve(settings *entities.Settings) *AdapterDispatcher {
	adapters := make([]domainRepos.AdapterRepository, 0, len(r.factories))
	for _, factory := range r.factories {
		adapters = append(adapters, factory(settings))
	}
	return &AdapterDispatcher{adapters: adapters}
}

// AdapterDispatcher routes each call to the first adapter supporting the file.
type AdapterDispatcher struct {
	adapters []domainRepos.AdapterRepository
}

var (
	_ domainRepos.UpdaterRepository   = (*AdapterDispatcher)(nil)
	_ domainRepos.InspectorRepository = (*AdapterDispatcher)(nil)
)

// For returns the adapter handling path.
func (d *AdapterDispatcher) For(path string) (domainRepos.AdapterRepository, error) {
	for _, adapter := range d.adapters {
		if adapter.Supports(path) {
			logger.Debugf("Using %s adapter for %s", adapter.Name(), path)
			return adapter, nil
		}
	}
	return nil, fmt.Errorf("%w: no adapter for %s", entities.ErrUnsupportedFile, path)
}

func (d *AdapterDispatcher) UpdateLockfile(
	ctx context.Context,
	path string,
) (entities.LockfileSnapshot, error) {
	adapter, err := d.For(path)
	if err != nil {
		return entities.LockfileSnapshot{}, err
	}
	return adapter.UpdateLockfile(ctx, path)
}

func (d *AdapterDispatcher) UpdateManifest(ctx context.Context, path, dependency, version string) error {
	adapter, err := d.For(path)
	if err != nil {
		return err
	}
	return adapter.UpdateManifest(ctx, path, dependency, version)
}

func (d *AdapterDispatcher) CollectDependencies(
	ctx context.Context,
	snapshot entities.LockfileSnapshot,
) (map[string]any, error) {
	adapter, err := d.For(snapshot.Path)
	if err != nil {
		return nil, err
	}
	return adapter.CollectDependencies(ctx, snapshot)
}

func (d *AdapterDispatcher) Fingerprint(ctx context.Context, path string) (string, error) {
	adapter, err := d.For(path)
	if err != nil {
		return "", err
	}
	return adapter.Fingerprint(ctx, path)
}

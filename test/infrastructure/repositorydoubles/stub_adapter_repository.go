//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"path/filepath"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
	"github.com/rios0rios0/dependactor/internal/domain/repositories"
)

// StubAdapterRepository implements repositories.AdapterRepository with canned answers.
type StubAdapterRepository struct {
	Journal *CallJournal

	// --- identity ---
	AdapterName string
	Extensions  []string // file extensions or base names handled; empty means all

	// --- canned answers ---
	Dependencies     map[string]any
	FingerprintValue string

	// --- configured failures ---
	UpdateLockfileErr error
	UpdateManifestErr error
	CollectErr        error
	FingerprintErr    error

	// --- recorded calls ---
	LockfileUpdates []string
	ManifestUpdates []ManifestUpdateCall
	Collected       []entities.LockfileSnapshot
}

// ManifestUpdateCall records a single invocation of UpdateManifest.
type ManifestUpdateCall struct {
	Path       string
	Dependency string
	Version    string
}

var _ repositories.AdapterRepository = (*StubAdapterRepository)(nil)

func (s *StubAdapterRepository) Name() string { return s.AdapterName }

func (s *StubAdapterRepository) Supports(path string) bool {
	if len(s.Extensions) == 0 {
		return true
	}
	for _, ext := range s.Extensions {
		if filepath.Ext(path) == ext || filepath.Base(path) == ext {
			return true
		}
	}
	return false
}

func (s *StubAdapterRepository) UpdateLockfile(
	_ context.Context,
	path string,
) (entities.LockfileSnapshot, error) {
	s.Journal.Record("update-lockfile %s", path)
	s.LockfileUpdates = append(s.LockfileUpdates, path)
	if s.UpdateLockfileErr != nil {
		return entities.LockfileSnapshot{}, s.UpdateLockfileErr
	}
	return entities.LockfileSnapshot{Path: path, Content: []byte(s.AdapterName)}, nil
}

func (s *StubAdapterRepository) UpdateManifest(_ context.Context, path, dependency, version string) error {
	s.Journal.Record("update-manifest %s %s %s", path, dependency, version)
	s.ManifestUpdates = append(s.ManifestUpdates, ManifestUpdateCall{
		Path:       path,
		Dependency: dependency,
		Version:    version,
	})
	return s.UpdateManifestErr
}

func (s *StubAdapterRepository) CollectDependencies(
	_ context.Context,
	snapshot entities.LockfileSnapshot,
) (map[string]any, error) {
	s.Journal.Record("collect %s", snapshot.Path)
	s.Collected = append(s.Collected, snapshot)
	return s.Dependencies, s.CollectErr
}

func (s *StubAdapterRepository) Fingerprint(_ context.Context, path string) (string, error) {
	s.Journal.Record("fingerprint %s", path)
	return s.FingerprintValue, s.FingerprintErr
}

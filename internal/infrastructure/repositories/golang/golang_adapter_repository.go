package golang

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
	"github.com/rios0rios0/dependactor/internal/domain/repositories"
	"github.com/rios0rios0/dependactor/internal/infrastructure/repositories/fingerprint"
	"github.com/rios0rios0/dependactor/internal/infrastructure/repositories/shell"
)

const (
	adapterName  = "golang"
	manifestName = "go.mod"
	lockfileName = "go.sum"
	goBinary     = "go"
	goSumSuffix  = "/go.mod"
)

// AdapterRepository updates Go modules: single requirements in go.mod and
// the whole module graph recorded in go.sum.
type AdapterRepository struct {
	runner  shell.Runner
	repoDir string
}

var _ repositories.AdapterRepository = (*AdapterRepository)(nil)

// New creates a Go adapter rooted at repoDir.
func New(runner shell.Runner, repoDir string) *AdapterRepository {
	return &AdapterRepository{runner: runner, repoDir: repoDir}
}

// NewAdapterRepository is the registry factory for the Go adapter.
func NewAdapterRepository(settings *entities.Settings) repositories.AdapterRepository {
	return New(shell.NewExecRunner(), settings.Repository)
}

func (it *AdapterRepository) Name() string { return adapterName }

func (it *AdapterRepository) Supports(path string) bool {
	base := filepath.Base(path)
	return base == manifestName || base == lockfileName
}

// UpdateLockfile runs `go get -u ./...` and `go mod tidy` in the module that owns go.sum.
func (it *AdapterRepository) UpdateLockfile(
	ctx context.Context,
	path string,
) (entities.LockfileSnapshot, error) {
	if filepath.Base(path) != lockfileName {
		return entities.LockfileSnapshot{}, fmt.Errorf("%w: %s is not a %s", entities.ErrUnsupportedFile, path, lockfileName)
	}

	moduleDir := filepath.Join(it.repoDir, filepath.Dir(path))
	logger.Infof("[%s] Updating all modules in %s", adapterName, moduleDir)

	for _, args := range [][]string{{"get", "-u", "./..."}, {"mod", "tidy"}} {
		if _, err := it.runner.Run(ctx, moduleDir, goBinary, args...); err != nil {
			return entities.LockfileSnapshot{}, err
		}
	}

	content, err := os.ReadFile(filepath.Join(it.repoDir, path))
	if err != nil {
		return entities.LockfileSnapshot{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return entities.LockfileSnapshot{Path: path, Content: content}, nil
}

// UpdateManifest sets the requirement on dependency to version in go.mod.
// A missing "v" prefix is added.
func (it *AdapterRepository) UpdateManifest(_ context.Context, path, dependency, version string) error {
	if filepath.Base(path) != manifestName {
		return fmt.Errorf("%w: %s is not a %s", entities.ErrUnsupportedFile, path, manifestName)
	}

	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if err := module.Check(dependency, version); err != nil {
		return fmt.Errorf("invalid module version: %w", err)
	}

	absPath := filepath.Join(it.repoDir, path)
	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	file, err := modfile.Parse(absPath, data, nil)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err = file.AddRequire(dependency, version); err != nil {
		return fmt.Errorf("failed to require %s@%s: %w", dependency, version, err)
	}
	file.Cleanup()

	formatted, err := file.Format()
	if err != nil {
		return fmt.Errorf("failed to format %s: %w", path, err)
	}

	logger.Infof("[%s] Set %s to %s in %s", adapterName, dependency, version, path)
	return os.WriteFile(absPath, formatted, info.Mode().Perm())
}

// CollectDependencies reads module versions from go.sum. go.sum lists the
// versions of a module in ascending order, so the last one wins.
func (it *AdapterRepository) CollectDependencies(
	_ context.Context,
	snapshot entities.LockfileSnapshot,
) (map[string]any, error) {
	dependencies := make(map[string]any)

	scanner := bufio.NewScanner(bytes.NewReader(snapshot.Content))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 3 { //nolint:mnd // module version hash
			continue
		}
		dependencies[fields[0]] = strings.TrimSuffix(fields[1], goSumSuffix)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", snapshot.Path, err)
	}

	return dependencies, nil
}

func (it *AdapterRepository) Fingerprint(_ context.Context, path string) (string, error) {
	return fingerprint.File(filepath.Join(it.repoDir, path))
}

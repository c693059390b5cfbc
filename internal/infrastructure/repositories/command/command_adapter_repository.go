package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
	"github.com/rios0rios0/dependactor/internal/domain/repositories"
	"github.com/rios0rios0/dependactor/internal/infrastructure/repositories/fingerprint"
	"github.com/rios0rios0/dependactor/internal/infrastructure/repositories/shell"
)

const adapterName = "command"

// AdapterRepository delegates updates and inspection to configured external
// commands. It supports every file and is registered last as the fallback.
type AdapterRepository struct {
	runner  shell.Runner
	repoDir string
	config  entities.CommandUpdaterConfig
}

var _ repositories.AdapterRepository = (*AdapterRepository)(nil)

// New creates a command adapter rooted at repoDir.
func New(runner shell.Runner, repoDir string, config entities.CommandUpdaterConfig) *AdapterRepository {
	return &AdapterRepository{runner: runner, repoDir: repoDir, config: config}
}

// NewAdapterRepository is the registry factory for the command adapter.
func NewAdapterRepository(settings *entities.Settings) repositories.AdapterRepository {
	return New(shell.NewExecRunner(), settings.Repository, settings.Updaters.Command)
}

func (it *AdapterRepository) Name() string { return adapterName }

func (it *AdapterRepository) Supports(string) bool { return true }

func (it *AdapterRepository) UpdateLockfile(
	ctx context.Context,
	path string,
) (entities.LockfileSnapshot, error) {
	if _, err := it.run(ctx, "lockfile", it.config.Lockfile, map[string]string{"path": path}); err != nil {
		return entities.LockfileSnapshot{}, err
	}

	content, err := os.ReadFile(filepath.Join(it.repoDir, path))
	if err != nil {
		return entities.LockfileSnapshot{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return entities.LockfileSnapshot{Path: path, Content: content}, nil
}

func (it *AdapterRepository) UpdateManifest(ctx context.Context, path, dependency, version string) error {
	_, err := it.run(ctx, "manifest", it.config.Manifest, map[string]string{
		"path":       path,
		"dependency": dependency,
		"version":    version,
	})
	return err
}

// CollectDependencies runs the collect command, which must print a JSON
// object mapping dependency names to their details.
func (it *AdapterRepository) CollectDependencies(
	ctx context.Context,
	snapshot entities.LockfileSnapshot,
) (map[string]any, error) {
	output, err := it.run(ctx, "collect", it.config.Collect, map[string]string{"path": snapshot.Path})
	if err != nil {
		return nil, err
	}

	var dependencies map[string]any
	if err = json.Unmarshal(output, &dependencies); err != nil {
		return nil, fmt.Errorf("collect command printed invalid JSON: %w", err)
	}
	return dependencies, nil
}

func (it *AdapterRepository) Fingerprint(_ context.Context, path string) (string, error) {
	return fingerprint.File(filepath.Join(it.repoDir, path))
}

func (it *AdapterRepository) run(
	ctx context.Context,
	step, commandLine string,
	values map[string]string,
) ([]byte, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, fmt.Errorf("no %q command configured under updaters.command", step)
	}

	args := make([]string, 0, len(fields)-1)
	for _, field := range fields[1:] {
		args = append(args, expand(field, values))
	}

	logger.Debugf("[%s] Running %s step: %s", adapterName, step, commandLine)
	return it.runner.Run(ctx, it.repoDir, fields[0], args...)
}

func expand(field string, values map[string]string) string {
	for key, value := range values {
		field = strings.ReplaceAll(field, "{"+key+"}", value)
	}
	return field
}

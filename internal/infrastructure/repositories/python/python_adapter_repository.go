package python

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
	"github.com/rios0rios0/dependactor/internal/domain/repositories"
	"github.com/rios0rios0/dependactor/internal/infrastructure/repositories/fingerprint"
	"github.com/rios0rios0/dependactor/internal/infrastructure/repositories/shell"
)

const (
	adapterName      = "python"
	requirementsName = "requirements.txt"
	pipfileName      = "Pipfile"
	pipfileLockName  = "Pipfile.lock"
	pipenvBinary     = "pipenv"
	defaultPython    = "python3"
)

var (
	// requirementPattern splits a requirement line into name, extras, specifier and the rest
	// (environment markers and comments).
	requirementPattern = regexp.MustCompile(
		`^(\s*)([A-Za-z0-9][A-Za-z0-9._-]*)(\[[^\]]*\])?\s*((?:==|~=|>=|<=|!=|>|<)[^;#\s]*)?(.*)$`,
	)

	// pipfileEntryPattern matches `name = "spec"` and `name = {version = "spec", ...}` lines.
	pipfileEntryPattern = regexp.MustCompile(
		`^(\s*"?)([A-Za-z0-9][A-Za-z0-9._-]*)("?\s*=\s*)(.*)$`,
	)
	pipfileVersionPattern = regexp.MustCompile(`(version\s*=\s*)"[^"]*"`)

	nameSeparators = regexp.MustCompile(`[-_.]+`)
)

// pipfileSections are the Pipfile tables holding dependencies.
var pipfileSections = []string{"packages", "dev-packages"}

// AdapterRepository updates Python dependencies: pinned requirements.txt files
// through pip and Pipfile/Pipfile.lock pairs through pipenv.
type AdapterRepository struct {
	runner  shell.Runner
	repoDir string
	python  string
}

var _ repositories.AdapterRepository = (*AdapterRepository)(nil)

// New creates a Python adapter rooted at repoDir running pip through the given interpreter.
func New(runner shell.Runner, repoDir, python string) *AdapterRepository {
	return &AdapterRepository{runner: runner, repoDir: repoDir, python: python}
}

// NewAdapterRepository is the registry factory for the Python adapter.
func NewAdapterRepository(settings *entities.Settings) repositories.AdapterRepository {
	python, err := findPythonBinary()
	if err != nil {
		logger.Debugf("[%s] %v, falling back to %s", adapterName, err, defaultPython)
		python = defaultPython
	}
	return New(shell.NewExecRunner(), settings.Repository, python)
}

func (it *AdapterRepository) Name() string { return adapterName }

func (it *AdapterRepository) Supports(path string) bool {
	switch filepath.Base(path) {
	case requirementsName, pipfileName, pipfileLockName:
		return true
	}
	return false
}

// UpdateLockfile upgrades every requirement and freezes the result back into
// requirements.txt, or re-resolves a Pipfile.lock with pipenv.
func (it *AdapterRepository) UpdateLockfile(
	ctx context.Context,
	path string,
) (entities.LockfileSnapshot, error) {
	workDir := filepath.Join(it.repoDir, filepath.Dir(path))
	absPath := filepath.Join(it.repoDir, path)

	switch filepath.Base(path) {
	case requirementsName:
		logger.Infof("[%s] Upgrading all requirements in %s", adapterName, path)
		if _, err := it.runner.Run(ctx, workDir, it.python,
			"-m", "pip", "install", "--upgrade", "-r", requirementsName); err != nil {
			return entities.LockfileSnapshot{}, err
		}
		frozen, err := it.runner.Run(ctx, workDir, it.python, "-m", "pip", "freeze")
		if err != nil {
			return entities.LockfileSnapshot{}, err
		}
		if err = writePreservingMode(absPath, frozen); err != nil {
			return entities.LockfileSnapshot{}, err
		}
	case pipfileLockName:
		logger.Infof("[%s] Re-locking %s", adapterName, path)
		if _, err := it.runner.Run(ctx, workDir, pipenvBinary, "lock"); err != nil {
			return entities.LockfileSnapshot{}, err
		}
	default:
		return entities.LockfileSnapshot{}, fmt.Errorf("%w: %s is not a Python lockfile", entities.ErrUnsupportedFile, path)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return entities.LockfileSnapshot{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return entities.LockfileSnapshot{Path: path, Content: content}, nil
}

// UpdateManifest pins dependency to version in requirements.txt or Pipfile.
func (it *AdapterRepository) UpdateManifest(_ context.Context, path, dependency, version string) error {
	absPath := filepath.Join(it.repoDir, path)
	data, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var updated []byte
	switch filepath.Base(path) {
	case requirementsName:
		updated, err = pinRequirement(data, dependency, version)
	case pipfileName:
		updated, err = pinPipfile(data, dependency, version)
	default:
		return fmt.Errorf("%w: %s is not a Python manifest", entities.ErrUnsupportedFile, path)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	logger.Infof("[%s] Pinned %s to %s in %s", adapterName, dependency, version, path)
	return writePreservingMode(absPath, updated)
}

// CollectDependencies maps package names to pinned versions, read from
// `name==version` lines or from the default and develop sections of Pipfile.lock.
func (it *AdapterRepository) CollectDependencies(
	_ context.Context,
	snapshot entities.LockfileSnapshot,
) (map[string]any, error) {
	if filepath.Base(snapshot.Path) == pipfileLockName {
		return collectPipfileLock(snapshot)
	}

	dependencies := make(map[string]any)
	scanner := bufio.NewScanner(bytes.NewReader(snapshot.Content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		match := requirementPattern.FindStringSubmatch(line)
		if match == nil || !strings.HasPrefix(match[4], "==") {
			continue
		}
		dependencies[match[2]] = strings.TrimPrefix(match[4], "==")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", snapshot.Path, err)
	}
	return dependencies, nil
}

func (it *AdapterRepository) Fingerprint(_ context.Context, path string) (string, error) {
	return fingerprint.File(filepath.Join(it.repoDir, path))
}

type pipfileLock struct {
	Default map[string]pipfileLockEntry `json:"default"`
	Develop map[string]pipfileLockEntry `json:"develop"`
}

type pipfileLockEntry struct {
	Version string `json:"version"`
}

func collectPipfileLock(snapshot entities.LockfileSnapshot) (map[string]any, error) {
	var lock pipfileLock
	if err := json.Unmarshal(snapshot.Content, &lock); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", snapshot.Path, err)
	}

	dependencies := make(map[string]any)
	for _, section := range []map[string]pipfileLockEntry{lock.Develop, lock.Default} {
		for name, entry := range section {
			if entry.Version != "" {
				dependencies[name] = strings.TrimPrefix(entry.Version, "==")
			}
		}
	}
	return dependencies, nil
}

// pinRequirement rewrites the specifier of one requirement to ==version,
// keeping extras, markers and comments.
func pinRequirement(data []byte, dependency, version string) ([]byte, error) {
	lines := strings.SplitAfter(string(data), "\n")
	found := false
	for i, line := range lines {
		body := strings.TrimRight(line, "\r\n")
		match := requirementPattern.FindStringSubmatch(body)
		if match == nil || strings.HasPrefix(strings.TrimSpace(body), "#") ||
			normalizeName(match[2]) != normalizeName(dependency) {
			continue
		}
		rest := match[5]
		if rest != "" && !strings.HasPrefix(rest, " ") {
			rest = " " + strings.TrimLeft(rest, " ")
		}
		lines[i] = match[1] + match[2] + match[3] + "==" + version + rest + line[len(body):]
		found = true
	}
	if !found {
		return nil, fmt.Errorf("requirement %q not found", dependency)
	}
	return []byte(strings.Join(lines, "")), nil
}

// pinPipfile rewrites the entry of dependency in [packages] or [dev-packages].
func pinPipfile(data []byte, dependency, version string) ([]byte, error) {
	var document map[string]any
	if err := toml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}
	if pipfileSection(document, dependency) == "" {
		return nil, fmt.Errorf("package %q not found", dependency)
	}

	lines := strings.SplitAfter(string(data), "\n")
	section := ""
	for i, line := range lines {
		body := strings.TrimRight(line, "\r\n")
		trimmed := strings.TrimSpace(body)
		if strings.HasPrefix(trimmed, "[") {
			section = strings.Trim(trimmed, "[] ")
			continue
		}
		if !slices.Contains(pipfileSections, section) {
			continue
		}
		match := pipfileEntryPattern.FindStringSubmatch(body)
		if match == nil || normalizeName(match[2]) != normalizeName(dependency) {
			continue
		}

		value := match[4]
		pinned := `"==` + version + `"`
		if strings.HasPrefix(strings.TrimSpace(value), "{") {
			if pipfileVersionPattern.MatchString(value) {
				value = pipfileVersionPattern.ReplaceAllString(value, "${1}"+pinned)
			} else {
				value = strings.Replace(value, "{", "{version = "+pinned+", ", 1)
			}
		} else {
			value = pinned
		}
		lines[i] = match[1] + match[2] + match[3] + value + line[len(body):]
		return []byte(strings.Join(lines, "")), nil
	}
	return nil, fmt.Errorf("package %q not found", dependency)
}

func pipfileSection(document map[string]any, dependency string) string {
	for _, section := range pipfileSections {
		packages, ok := document[section].(map[string]any)
		if !ok {
			continue
		}
		for name := range packages {
			if normalizeName(name) == normalizeName(dependency) {
				return section
			}
		}
	}
	return ""
}

// normalizeName applies the package index name normalization (PEP 503).
func normalizeName(name string) string {
	return nameSeparators.ReplaceAllString(strings.ToLower(name), "-")
}

func writePreservingMode(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return os.WriteFile(path, data, info.Mode().Perm())
}

func findPythonBinary() (string, error) {
	for _, name := range []string{"python3", "python"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		for _, name := range []string{"python3", "python"} {
			candidate := filepath.Join(home, ".pyenv", "shims", name)
			if _, statErr := os.Stat(candidate); statErr == nil {
				return candidate, nil
			}
		}
	}

	return "", errors.New("python binary not found in PATH")
}

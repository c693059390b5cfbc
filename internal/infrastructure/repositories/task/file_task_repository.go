package task

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
	"github.com/rios0rios0/dependactor/internal/domain/repositories"
)

const reportFileMode = 0o644

// FileTaskRepository reads task descriptions from JSON or YAML files.
type FileTaskRepository struct{}

var _ repositories.TaskRepository = (*FileTaskRepository)(nil)

// NewFileTaskRepository creates a file-backed task repository.
func NewFileTaskRepository() *FileTaskRepository {
	return &FileTaskRepository{}
}

// Load parses the task at path. Files ending in .yaml or .yml are read as
// YAML, everything else as JSON.
func (it *FileTaskRepository) Load(_ context.Context, path string) (*entities.UpdateTask, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %q: %w", entities.ErrMalformedTask, path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %q is empty", entities.ErrMalformedTask, path)
	}

	// A null document leaves task nil, which Validate rejects.
	var task *entities.UpdateTask
	if isYAML(path) {
		err = yaml.Unmarshal(data, &task)
	} else {
		err = decodeJSON(data, &task)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %q: %w", entities.ErrMalformedTask, path, err)
	}

	if validateErr := task.Validate(); validateErr != nil {
		return nil, validateErr
	}
	return task, nil
}

// decodeJSON decodes exactly one JSON value from data.
func decodeJSON(data []byte, target any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(target); err != nil {
		return err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after the task")
	}
	return nil
}

// Save writes the task as indented JSON.
func (it *FileTaskRepository) Save(_ context.Context, path string, task *entities.UpdateTask) error {
	data, err := json.MarshalIndent(task, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize task: %w", err)
	}
	if writeErr := os.WriteFile(path, append(data, '\n'), reportFileMode); writeErr != nil {
		return fmt.Errorf("failed to write %q: %w", path, writeErr)
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

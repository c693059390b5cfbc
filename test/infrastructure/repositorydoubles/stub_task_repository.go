//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
	"github.com/rios0rios0/dependactor/internal/domain/repositories"
)

// StubTaskRepository implements repositories.TaskRepository over an in-memory task.
type StubTaskRepository struct {
	Task    *entities.UpdateTask
	LoadErr error
	SaveErr error

	LoadedPaths []string
	SavedPath   string
	SavedTask   *entities.UpdateTask
}

var _ repositories.TaskRepository = (*StubTaskRepository)(nil)

func (s *StubTaskRepository) Load(_ context.Context, path string) (*entities.UpdateTask, error) {
	s.LoadedPaths = append(s.LoadedPaths, path)
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return s.Task, nil
}

func (s *StubTaskRepository) Save(_ context.Context, path string, task *entities.UpdateTask) error {
	s.SavedPath = path
	s.SavedTask = task
	return s.SaveErr
}

package repositories

import (
	"context"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
)

// TaskRepository reads and writes task descriptions.
type TaskRepository interface {
	Load(ctx context.Context, path string) (*entities.UpdateTask, error)
	Save(ctx context.Context, path string, task *entities.UpdateTask) error
}

package commands

import (
	"context"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
	"github.com/rios0rios0/dependactor/internal/domain/repositories"
)

// Plan is the interface for the plan command.
type Plan interface {
	Execute(ctx context.Context, settings *entities.Settings, jobID string) ([]entities.UpdateUnit, error)
}

// PlanCommand lists the units a job would run without touching the repository.
type PlanCommand struct {
	taskRepository repositories.TaskRepository
}

// NewPlanCommand creates a new PlanCommand.
func NewPlanCommand(taskRepository repositories.TaskRepository) *PlanCommand {
	return &PlanCommand{taskRepository: taskRepository}
}

func (it *PlanCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	jobID string,
) ([]entities.UpdateUnit, error) {
	task, err := it.taskRepository.Load(ctx, settings.Input)
	if err != nil {
		return nil, err
	}
	return entities.PlanUnits(task, jobID)
}

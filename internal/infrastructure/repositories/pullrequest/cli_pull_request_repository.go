package pullrequest

import (
	"context"
	"encoding/json"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
	"github.com/rios0rios0/dependactor/internal/domain/repositories"
	"github.com/rios0rios0/dependactor/internal/infrastructure/repositories/shell"
)

// CLIPullRequestRepository submits pull requests through an external command
// taking --branch and --dependencies-json. The command inherits the process
// environment and decides by itself whether it runs in test mode.
type CLIPullRequestRepository struct {
	runner  shell.Runner
	repoDir string
	command string
}

var _ repositories.PullRequestRepository = (*CLIPullRequestRepository)(nil)

// NewCLIPullRequestRepository creates a submission client running command in repoDir.
func NewCLIPullRequestRepository(runner shell.Runner, repoDir, command string) *CLIPullRequestRepository {
	return &CLIPullRequestRepository{runner: runner, repoDir: repoDir, command: command}
}

// NewPullRequestRepository is the factory used by the DI container.
func NewPullRequestRepository(settings *entities.Settings) repositories.PullRequestRepository {
	return NewCLIPullRequestRepository(shell.NewExecRunner(), settings.Repository, settings.PullRequestCommand)
}

// Submit serializes the payload to JSON and runs the submission command.
func (it *CLIPullRequestRepository) Submit(
	ctx context.Context,
	branch string,
	payload *entities.UpdateTask,
) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to serialize payload: %w", entities.ErrSubmission, err)
	}

	logger.Debugf("[pullrequest] Submitting %s with %d bytes of payload", branch, len(data))

	output, err := it.runner.Run(ctx, it.repoDir, it.command,
		"--branch", branch,
		"--dependencies-json", string(data),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", entities.ErrSubmission, err)
	}

	if len(output) > 0 {
		logger.Debugf("[pullrequest] %s", output)
	}
	return nil
}

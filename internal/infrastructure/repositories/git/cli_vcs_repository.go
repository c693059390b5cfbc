package git

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
	"github.com/rios0rios0/dependactor/internal/domain/repositories"
	"github.com/rios0rios0/dependactor/internal/infrastructure/repositories/shell"
)

const gitBinary = "git"

// CLIVCSRepository drives the git command line in a working copy.
type CLIVCSRepository struct {
	runner  shell.Runner
	repoDir string
}

var _ repositories.VCSRepository = (*CLIVCSRepository)(nil)

// NewCLIVCSRepository creates a git CLI runner for the given working copy.
func NewCLIVCSRepository(runner shell.Runner, repoDir string) *CLIVCSRepository {
	return &CLIVCSRepository{runner: runner, repoDir: repoDir}
}

// NewVCSRepository is the registry factory for the git CLI backend.
func NewVCSRepository(settings *entities.Settings) repositories.VCSRepository {
	return NewCLIVCSRepository(shell.NewExecRunner(), settings.Repository)
}

func (it *CLIVCSRepository) Checkout(ctx context.Context, ref string) error {
	logger.Debugf("[git] Checking out %s", ref)
	return it.git(ctx, "checkout", ref)
}

func (it *CLIVCSRepository) CheckoutNewBranch(ctx context.Context, name string) error {
	logger.Debugf("[git] Creating branch %s", name)
	return it.git(ctx, "checkout", "-b", name)
}

func (it *CLIVCSRepository) Add(ctx context.Context, path string) error {
	return it.git(ctx, "add", path)
}

func (it *CLIVCSRepository) Commit(ctx context.Context, message string) error {
	return it.git(ctx, "commit", "-m", message)
}

func (it *CLIVCSRepository) Push(ctx context.Context, remote, branch string) error {
	logger.Debugf("[git] Pushing %s to %s", branch, remote)
	return it.git(ctx, "push", "--set-upstream", remote, branch)
}

func (it *CLIVCSRepository) git(ctx context.Context, args ...string) error {
	_, err := it.runner.Run(ctx, it.repoDir, gitBinary, args...)
	return err
}

package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
	domainRepos "github.com/rios0rios0/dependactor/internal/domain/repositories"
	cmdRepo "github.com/rios0rios0/dependactor/internal/infrastructure/repositories/command"
	gitRepo "github.com/rios0rios0/dependactor/internal/infrastructure/repositories/git"
	goGitRepo "github.com/rios0rios0/dependactor/internal/infrastructure/repositories/gogit"
	goRepo "github.com/rios0rios0/dependactor/internal/infrastructure/repositories/golang"
	prRepo "github.com/rios0rios0/dependactor/internal/infrastructure/repositories/pullrequest"
	pyRepo "github.com/rios0rios0/dependactor/internal/infrastructure/repositories/python"
	taskRepo "github.com/rios0rios0/dependactor/internal/infrastructure/repositories/task"
	tfRepo "github.com/rios0rios0/dependactor/internal/infrastructure/repositories/terraform"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register VCS registry with both backends
	if err := container.Provide(func() *VCSRegistry {
		reg := NewVCSRegistry()
		reg.Register(entities.VCSBackendCLI, gitRepo.NewVCSRepository)
		reg.Register(entities.VCSBackendGoGit, goGitRepo.NewVCSRepository)
		return reg
	}); err != nil {
		return err
	}

	// Register adapter registry; the command adapter catches everything else
	if err := container.Provide(func() *AdapterRegistry {
		reg := NewAdapterRegistry()
		reg.Register(goRepo.NewAdapterRepository)
		reg.Register(tfRepo.NewAdapterRepository)
		reg.Register(pyRepo.NewAdapterRepository)
		reg.Register(cmdRepo.NewAdapterRepository)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() PullRequestFactory {
		return prRepo.NewPullRequestRepository
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.TaskRepository {
		return taskRepo.NewFileTaskRepository()
	}); err != nil {
		return err
	}

	return nil
}

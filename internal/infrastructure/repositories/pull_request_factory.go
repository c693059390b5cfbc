package repositories

import (
	"github.com/rios0rios0/dependactor/internal/domain/entities"
	domainRepos "github.com/rios0rios0/dependactor/internal/domain/repositories"
)

// PullRequestFactory builds the submission client for the configured working copy.
type PullRequestFactory func(settings *entities.Settings) domainRepos.PullRequestRepository
